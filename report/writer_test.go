package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	if _, err := WriterForFormat("CSV "); err != nil {
		t.Fatalf("csv writer: %v", err)
	}
	if _, err := WriterForFormat("xlsx"); err != nil {
		t.Fatalf("xlsx writer: %v", err)
	}
	if _, err := WriterForFormat("pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestCSVWriterRoundtrip(t *testing.T) {
	t.Parallel()

	built := Build(testEntries(), testDirectory(), nil, 80, 0.05)
	path := filepath.Join(t.TempDir(), "allocation.csv")

	writer := &CSVWriter{}
	if err := writer.Write(path, built); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if len(records) != len(built.Rows)+1 {
		t.Fatalf("expected %d records, got %d", len(built.Rows)+1, len(records))
	}
	if records[0][0] != "Employee Name" || records[0][6] != "Notes" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Jane Doe" || records[1][3] != "56.724211" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
}

type brokenSink struct{}

func (brokenSink) Write([]byte) (int, error) {
	return 0, os.ErrClosed
}

func TestCSVWriterSurfacesFlushErrors(t *testing.T) {
	t.Parallel()

	built := Build(testEntries(), testDirectory(), nil, 80, 0.05)
	if err := writeAllocationCSV(brokenSink{}, built); err == nil {
		t.Fatal("expected the sink error to surface")
	}
}

func TestExcelWriterRoundtrip(t *testing.T) {
	t.Parallel()

	built := Build(testEntries(), testDirectory(), nil, 80, 0.05)
	path := filepath.Join(t.TempDir(), "allocation.xlsx")

	writer := &ExcelWriter{}
	if err := writer.Write(path, built); err != nil {
		t.Fatalf("write excel: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	want := map[string]bool{allocationSheet: true, summarySheet: true, totalsSheet: true}
	for _, sheet := range sheets {
		delete(want, sheet)
	}
	if len(want) != 0 {
		t.Fatalf("missing sheets %v in %v", want, sheets)
	}

	header, err := file.GetCellValue(allocationSheet, "A1")
	if err != nil || header != "Employee Name" {
		t.Fatalf("unexpected header cell: %q %v", header, err)
	}

	employee, err := file.GetCellValue(allocationSheet, "A2")
	if err != nil || employee != "Jane Doe" {
		t.Fatalf("unexpected first employee: %q %v", employee, err)
	}

	width, err := file.GetColWidth(allocationSheet, "B")
	if err != nil {
		t.Fatalf("get column width: %v", err)
	}
	if width != 70 {
		t.Fatalf("unexpected job column width: %v", width)
	}
}
