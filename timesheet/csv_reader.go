package timesheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

type CSVReader struct {
	SkipRows int
}

func (r *CSVReader) Read(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	return readSeparated(file, path, ',', r.SkipRows)
}

func readSeparated(source io.Reader, path string, comma rune, skipRows int) (*Table, error) {
	reader := csv.NewReader(source)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rowNumber := 0
	for i := 0; i < skipRows; i++ {
		if _, err := reader.Read(); err == io.EOF {
			return nil, fmt.Errorf("file %s ended before the header row", path)
		} else if err != nil {
			return nil, fmt.Errorf("read preamble row %d of %s: %w", i+1, path, err)
		}
		rowNumber++
	}

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row of %s: %w", path, err)
	}
	rowNumber++

	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = NormalizeHeader(header)
	}

	records := make([]Record, 0, 128)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d of %s: %w", rowNumber+1, path, err)
		}
		rowNumber++
		records = append(records, recordFromRow(headers, row, rowNumber))
	}

	return &Table{Path: path, Headers: headers, Records: records}, nil
}
