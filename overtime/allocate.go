package overtime

import (
	"math"
	"sort"

	"jobcost/roster"
	"jobcost/timesheet"
)

// Allocation is the directed overtime payload: employee-week group key to
// entry key to overtime hours. An empty allocation selects the proportional
// fallback.
type Allocation map[string]map[string]float64

// driftTolerance bounds how far an employee-week's allocated overtime may
// drift from its excess over the threshold before the run is flagged.
const driftTolerance = 0.01

// Result summarizes one allocation pass. Missed keys are warnings, not
// failures: those assignments are simply skipped. DriftEmployees lists
// employees whose allocated overtime does not add up to their weeks'
// excess, typically a directed allocation that under- or over-assigns.
type Result struct {
	DirectedApplied int
	MissedKeys      []string
	FallbackUsed    bool
	DriftEmployees  []string
}

// Apply splits each entry's duration into regular and overtime hours,
// mutating entries in place. Whatever mode ran, regular hours are always
// re-derived as duration minus overtime afterwards; that identity is the
// invariant everything downstream relies on.
func Apply(entries []timesheet.WorkEntry, alloc Allocation, directory roster.Directory, threshold float64) Result {
	var result Result

	if hasDirectedAllocations(alloc) {
		applyDirected(entries, alloc, &result)
	} else {
		applyProportional(entries, directory, threshold)
		result.FallbackUsed = true
	}

	// Consistency pass: regular hours always follow the overtime split.
	for i := range entries {
		entries[i].RegularHours = entries[i].Hours - entries[i].OTHours
	}
	result.DriftEmployees = driftingEmployees(entries, directory, threshold)

	return result
}

func hasDirectedAllocations(alloc Allocation) bool {
	for _, group := range alloc {
		if len(group) > 0 {
			return true
		}
	}
	return false
}

func applyDirected(entries []timesheet.WorkEntry, alloc Allocation, result *Result) {
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		key := entry.Key()
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	groups := make([]string, 0, len(alloc))
	for group := range alloc {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		keys := make([]string, 0, len(alloc[group]))
		for key := range alloc[group] {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			i, ok := index[key]
			if !ok {
				result.MissedKeys = append(result.MissedKeys, key)
				continue
			}
			entries[i].OTHours = alloc[group][key]
			result.DirectedApplied++
		}
	}
}

// applyProportional spreads each overtime week's excess across its entries
// in proportion to their share of the week. Salaried employees always get
// zero overtime; their rate is adjusted instead.
func applyProportional(entries []timesheet.WorkEntry, directory roster.Directory, threshold float64) {
	totals := weeklyTotals(entries)

	for i := range entries {
		entry := &entries[i]
		entry.OTHours = 0

		emp, ok := directory[entry.Employee]
		if !ok || emp.IsSalaried() {
			continue
		}

		weekTotal := totals[entry.GroupKey()]
		if weekTotal <= threshold {
			continue
		}

		entry.OTHours = (weekTotal - threshold) * (entry.Hours / weekTotal)
	}
}

// driftingEmployees compares each employee-week's allocated overtime with
// its excess over the threshold. Hourly weeks under the threshold and every
// salaried week expect zero overtime.
func driftingEmployees(entries []timesheet.WorkEntry, directory roster.Directory, threshold float64) []string {
	weekHours := weeklyTotals(entries)

	allocated := make(map[string]float64, len(weekHours))
	employeeOf := make(map[string]string, len(weekHours))
	for _, entry := range entries {
		group := entry.GroupKey()
		allocated[group] += entry.OTHours
		employeeOf[group] = entry.Employee
	}

	flagged := make(map[string]struct{}, 4)
	for group, ot := range allocated {
		expected := 0.0
		if emp, ok := directory[employeeOf[group]]; ok && emp.IsHourly() {
			if excess := weekHours[group] - threshold; excess > 0 {
				expected = excess
			}
		}
		if math.Abs(ot-expected) > driftTolerance {
			flagged[employeeOf[group]] = struct{}{}
		}
	}

	drifting := make([]string, 0, len(flagged))
	for name := range flagged {
		drifting = append(drifting, name)
	}
	sort.Strings(drifting)
	return drifting
}
