package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	allocationSheet = "Job Cost Allocation"
	summarySheet    = "Summary"
	totalsSheet     = "Employee Totals"

	currencyFormat = `"$"#,##0.00`
)

var currencyNumFmt = currencyFormat

var allocationWidths = []float64{25, 70, 10, 12, 12, 12, 35}

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, report *Report) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), allocationSheet); err != nil {
		return fmt.Errorf("rename allocation sheet: %w", err)
	}

	currency, err := file.NewStyle(&excelize.Style{CustomNumFmt: &currencyNumFmt})
	if err != nil {
		return fmt.Errorf("create currency style: %w", err)
	}

	if err := w.writeAllocation(file, report, currency); err != nil {
		return err
	}
	if err := w.writeSummary(file, report, currency); err != nil {
		return err
	}
	if err := w.writeTotals(file, report, currency); err != nil {
		return err
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

func (w *ExcelWriter) writeAllocation(file *excelize.File, report *Report, currency int) error {
	for col, header := range AllocationHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(allocationSheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for col, width := range allocationWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := file.SetColWidth(allocationSheet, name, name, width); err != nil {
			return fmt.Errorf("set column width %s: %w", name, err)
		}
	}

	for i, row := range report.Rows {
		line := i + 2

		if err := setCells(file, allocationSheet, line, []any{
			stringOrNil(row.Employee),
			stringOrNil(row.Job),
			floatOrNil(row.Hours),
			stringOrNil(row.RateText),
			floatOrNil(row.Amount),
			stringOrNil(row.RateType),
			notesValue(row),
		}); err != nil {
			return err
		}

		// Dollar columns render as currency; display only, the stored
		// values keep full precision.
		if row.Amount != nil {
			cell, _ := excelize.CoordinatesToCellName(5, line)
			if err := file.SetCellStyle(allocationSheet, cell, cell, currency); err != nil {
				return fmt.Errorf("style amount cell %s: %w", cell, err)
			}
		}
		if row.NotesAmount != nil {
			cell, _ := excelize.CoordinatesToCellName(7, line)
			if err := file.SetCellStyle(allocationSheet, cell, cell, currency); err != nil {
				return fmt.Errorf("style notes cell %s: %w", cell, err)
			}
		}
	}

	return nil
}

func (w *ExcelWriter) writeSummary(file *excelize.File, report *Report, currency int) error {
	if _, err := file.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	headers := []any{"Employee Name", "Project/Job Code", "Regular Hours", "OT Hours", "Rate", "Regular Cost", "OT Cost", "Total Cost"}
	if err := setCells(file, summarySheet, 1, headers); err != nil {
		return err
	}
	if err := file.SetColWidth(summarySheet, "A", "A", 25); err != nil {
		return fmt.Errorf("set summary widths: %w", err)
	}
	if err := file.SetColWidth(summarySheet, "B", "B", 70); err != nil {
		return fmt.Errorf("set summary widths: %w", err)
	}

	for i, summary := range report.JobSummaries {
		line := i + 2
		if err := setCells(file, summarySheet, line, []any{
			summary.Employee,
			summary.Job,
			summary.RegularHours,
			summary.OTHours,
			summary.Rate,
			summary.RegularCost,
			summary.OTCost,
			summary.TotalCost,
		}); err != nil {
			return err
		}
		for col := 6; col <= 8; col++ {
			cell, _ := excelize.CoordinatesToCellName(col, line)
			if err := file.SetCellStyle(summarySheet, cell, cell, currency); err != nil {
				return fmt.Errorf("style summary cell %s: %w", cell, err)
			}
		}
	}

	return nil
}

func (w *ExcelWriter) writeTotals(file *excelize.File, report *Report, currency int) error {
	if _, err := file.NewSheet(totalsSheet); err != nil {
		return fmt.Errorf("create totals sheet: %w", err)
	}

	headers := []any{"Employee Name", "Total Hours", "Payrolled Hours", "Regular Hours", "OT Hours", "Base Rate", "Adjusted Rate", "OT Rate", "Total Cost"}
	if err := setCells(file, totalsSheet, 1, headers); err != nil {
		return err
	}
	if err := file.SetColWidth(totalsSheet, "A", "A", 25); err != nil {
		return fmt.Errorf("set totals widths: %w", err)
	}

	line := 1
	for _, total := range report.EmployeeTotals {
		line++

		adjustedRate := any("-")
		if total.HasAdjustedRate {
			adjustedRate = total.AdjustedRate
		}
		otRate := any("-")
		if total.HasOTRate {
			otRate = total.OTRate
		}

		if err := setCells(file, totalsSheet, line, []any{
			total.Employee,
			total.TotalHours,
			total.PayrolledHours,
			total.RegularHours,
			total.OTHours,
			total.BaseRate,
			adjustedRate,
			otRate,
			total.TotalCost,
		}); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(9, line)
		if err := file.SetCellStyle(totalsSheet, cell, cell, currency); err != nil {
			return fmt.Errorf("style totals cell %s: %w", cell, err)
		}
	}

	line += 2
	if err := setCells(file, totalsSheet, line, []any{
		"Grand Total",
		report.Grand.ActualHours,
		report.Grand.PayrolledHours,
		nil, nil, nil, nil, nil,
		report.Grand.TotalCost,
	}); err != nil {
		return err
	}
	cell, _ := excelize.CoordinatesToCellName(9, line)
	if err := file.SetCellStyle(totalsSheet, cell, cell, currency); err != nil {
		return fmt.Errorf("style grand total cell %s: %w", cell, err)
	}

	return nil
}

func setCells(file *excelize.File, sheet string, line int, values []any) error {
	for col, value := range values {
		if value == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, line)
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set excel value %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func stringOrNil(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func floatOrNil(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func notesValue(row Row) any {
	if row.NotesAmount != nil {
		return *row.NotesAmount
	}
	return stringOrNil(row.Notes)
}
