package timesheet

import (
	"fmt"
	"sort"
	"strings"

	"jobcost/internal/timeutil"
)

// Mandatory timesheet columns. Rates is presence-checked only; the rate
// applied to each entry comes from the employee roster, not the export.
var requiredColumns = []string{"Duration", "Activity date", "Customer full name", "Rates"}

// MissingColumnsError reports a source file that cannot be processed because
// mandatory columns are absent. This is fatal for the run.
type MissingColumnsError struct {
	Path    string
	Missing []string
	Present []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf(
		"file %s is missing required columns %v (columns present: %v)",
		e.Path,
		e.Missing,
		e.Present,
	)
}

func validateColumns(table *Table) error {
	missing := make([]string, 0, len(requiredColumns))
	for _, column := range requiredColumns {
		if !table.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingColumnsError{
		Path:    table.Path,
		Missing: missing,
		Present: append([]string(nil), table.Headers...),
	}
}

// Normalize flattens the two weekly exports into work entries. Employee
// names live on their own rows (activity date empty, leading cell set) and
// apply to every following row until the next name row. Subtotal rows
// ("Total for ...") and grand-total rows are discarded.
func Normalize(week1, week2 *Table) ([]WorkEntry, error) {
	entries := make([]WorkEntry, 0, len(week1.Records)+len(week2.Records))

	for i, table := range []*Table{week1, week2} {
		if err := validateColumns(table); err != nil {
			return nil, err
		}
		entries = append(entries, normalizeWeek(table, i+1)...)
	}

	return entries, nil
}

func normalizeWeek(table *Table, week int) []WorkEntry {
	entries := make([]WorkEntry, 0, len(table.Records))
	currentEmployee := ""

	for _, record := range table.Records {
		activityDate := record.Get("Activity date")
		first := strings.TrimSpace(record.First)

		// Grand-total rows carry "TOTAL" text in the date column.
		if activityDate != "" && strings.Contains(strings.ToUpper(activityDate), "TOTAL") {
			continue
		}

		if activityDate == "" {
			if first != "" && !strings.Contains(first, "Total for") {
				currentEmployee = first
			}
			continue
		}

		if currentEmployee == "" {
			continue
		}

		hours := ParseDuration(record.Get("Duration"))
		entries = append(entries, WorkEntry{
			Employee:     currentEmployee,
			Week:         week,
			ActivityDate: activityDate,
			Date:         timeutil.CanonicalDate(activityDate),
			Job:          record.Get("Customer full name"),
			Hours:        hours,
			RegularHours: hours,
		})
	}

	return entries
}

// DistinctEmployees returns the sorted set of employee names present in the
// entries.
func DistinctEmployees(entries []WorkEntry) []string {
	seen := make(map[string]struct{}, 32)
	for _, entry := range entries {
		seen[entry.Employee] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownEmployees returns timesheet names absent from the directory, the
// recoverable halt condition: the caller registers them and retries.
func UnknownEmployees(entries []WorkEntry, known map[string]struct{}) []string {
	unknown := make([]string, 0, 4)
	for _, name := range DistinctEmployees(entries) {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
