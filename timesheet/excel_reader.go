package timesheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type ExcelReader struct {
	SkipRows int
}

func (r *ExcelReader) Read(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) <= r.SkipRows {
		return nil, fmt.Errorf("sheet %s has no header row after %d preamble rows", sheetName, r.SkipRows)
	}

	headerRow := rows[r.SkipRows]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = NormalizeHeader(header)
	}

	records := make([]Record, 0, len(rows)-r.SkipRows-1)
	for i, row := range rows[r.SkipRows+1:] {
		records = append(records, recordFromRow(headers, row, r.SkipRows+i+2))
	}

	return &Table{Path: path, Headers: headers, Records: records}, nil
}
