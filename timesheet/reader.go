package timesheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Reader interface {
	Read(path string) (*Table, error)
}

// TimesheetPreambleRows is the number of rows before the header in a
// QuickBooks time-by-job export (title, company name, date range, blank).
const TimesheetPreambleRows = 4

// ReaderForPath selects a reader by file extension. skipRows rows are
// discarded before the header row.
func ReaderForPath(path string, skipRows int) (Reader, error) {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return &CSVReader{SkipRows: skipRows}, nil
	case "txt", "tsv":
		return &TSVReader{SkipRows: skipRows}, nil
	case "xlsx", "xlsm":
		return &ExcelReader{SkipRows: skipRows}, nil
	case "xls":
		return nil, fmt.Errorf("legacy .xls workbooks are not supported, re-save %s as .xlsx or .csv first", path)
	default:
		return nil, fmt.Errorf("unsupported file extension for %s", path)
	}
}

// ReadTimesheet reads one weekly timesheet export, skipping its preamble.
func ReadTimesheet(path string) (*Table, error) {
	reader, err := ReaderForPath(path, TimesheetPreambleRows)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}
