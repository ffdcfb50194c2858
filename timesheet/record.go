package timesheet

import "strings"

// Record is one data row with header-keyed access. The leading cell is kept
// separately because employee-name rows carry the name in an unlabeled first
// column.
type Record struct {
	RowNumber int
	First     string
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := NormalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Table is the raw result of reading one tabular source.
type Table struct {
	Path    string
	Headers []string
	Records []Record
}

func (t *Table) HasColumn(name string) bool {
	normalized := NormalizeHeader(name)
	for _, header := range t.Headers {
		if header == normalized {
			return true
		}
	}
	return false
}

func NormalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}

func recordFromRow(headers []string, row []string, rowNumber int) Record {
	values := make(map[string]string, len(headers))
	for i := range headers {
		if i < len(row) {
			values[headers[i]] = row[i]
		} else {
			values[headers[i]] = ""
		}
	}

	first := ""
	if len(row) > 0 {
		first = row[0]
	}

	return Record{RowNumber: rowNumber, First: first, Values: values}
}
