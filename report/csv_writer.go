package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, report *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	return writeAllocationCSV(file, report)
}

func writeAllocationCSV(out io.Writer, report *Report) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(AllocationHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			row.Employee,
			row.Job,
			formatOptional(row.Hours),
			row.RateText,
			formatOptional(row.Amount),
			row.RateType,
			notesCell(row),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	// Flush before the error check; rows buffer until here.
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func formatOptional(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func notesCell(row Row) string {
	if row.NotesAmount != nil {
		return strconv.FormatFloat(*row.NotesAmount, 'f', -1, 64)
	}
	return row.Notes
}
