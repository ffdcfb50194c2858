package paychex

import (
	"fmt"
	"strconv"
	"strings"

	"jobcost/timesheet"
)

// Column discovery works on normalized headers. Register exports rename
// columns between payroll periods, so each field carries a synonym list
// and the first header containing one of the fragments wins.
var (
	employeePatterns = []string{"employeeinformation", "employeename", "employee"}
	salaryPatterns   = []string{"salary", "grosswages", "gross"}
	regularPatterns  = []string{"reghrs", "regularhours", "regular"}
	overtimePatterns = []string{"o/thrs", "o/thr", "othrs", "othr", "overtimehours", "overtime"}
	ptoPatterns      = []string{"pto"}
	holidayPatterns  = []string{"holiday"}
	otherPatterns    = []string{"other", "bereav", "jury"}
	ratePatterns     = []string{"newrates", "newrate", "rate"}
)

// Rows whose employee cell matches one of these are register summaries,
// not people.
var summaryFragments = []string{"total", "allcolumns", "grand"}

// ReadFile reads and parses a payroll register export. Registers carry
// their header on the first row, so no preamble is skipped.
func ReadFile(path string) ([]Employee, error) {
	reader, err := timesheet.ReaderForPath(path, 0)
	if err != nil {
		return nil, err
	}
	table, err := reader.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(table)
}

// Parse extracts one Employee per payroll row. Summary rows and rows
// with no gross wages are dropped.
func Parse(table *timesheet.Table) ([]Employee, error) {
	employeeCol := findColumn(table.Headers, employeePatterns)
	salaryCol := findColumn(table.Headers, salaryPatterns)
	if employeeCol == "" || salaryCol == "" {
		return nil, fmt.Errorf("%s does not look like a payroll register: employee and salary columns not found in %v", table.Path, table.Headers)
	}

	regularCol := findColumn(table.Headers, regularPatterns)
	overtimeCol := findColumn(table.Headers, overtimePatterns)
	ptoCol := findColumn(table.Headers, ptoPatterns)
	holidayCol := findColumn(table.Headers, holidayPatterns)
	otherCol := findColumn(table.Headers, otherPatterns)
	rateCol := findColumn(table.Headers, ratePatterns)

	employees := make([]Employee, 0, len(table.Records))
	for _, record := range table.Records {
		rawName := strings.TrimSpace(record.Values[employeeCol])
		if rawName == "" || isSummaryRow(rawName) {
			continue
		}

		gross := safeFloat(record.Values[salaryCol])
		if gross == 0 {
			continue
		}

		employee := Employee{
			RawName:        rawName,
			NormalizedName: NormalizeName(rawName),
			GrossWages:     gross,
			RegularHours:   safeFloat(record.Values[regularCol]),
			OTHours:        safeFloat(record.Values[overtimeCol]),
			PTOHours:       safeFloat(record.Values[ptoCol]),
			HolidayHours:   safeFloat(record.Values[holidayCol]),
			OtherHours:     safeFloat(record.Values[otherCol]),
			BaseRate:       safeFloat(record.Values[rateCol]),
		}
		employees = append(employees, employee)
	}

	return employees, nil
}

func findColumn(headers []string, patterns []string) string {
	for _, pattern := range patterns {
		for _, header := range headers {
			if strings.Contains(header, pattern) {
				return header
			}
		}
	}
	return ""
}

func isSummaryRow(name string) bool {
	normalized := timesheet.NormalizeHeader(name)
	for _, fragment := range summaryFragments {
		if strings.Contains(normalized, fragment) {
			return true
		}
	}
	return false
}

// safeFloat parses currency-ish cells, tolerating $ signs and thousands
// separators. Anything unparseable reads as zero.
func safeFloat(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
