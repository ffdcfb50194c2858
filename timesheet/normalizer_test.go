package timesheet

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func tableFromRows(path string, headers []string, rows [][]string) *Table {
	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = NormalizeHeader(header)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		records = append(records, recordFromRow(normalized, row, i+2))
	}

	return &Table{Path: path, Headers: normalized, Records: records}
}

var timesheetHeaders = []string{"", "Activity date", "Customer full name", "Duration", "Rates"}

func TestNormalizePropagatesEmployeeNames(t *testing.T) {
	t.Parallel()

	week1 := tableFromRows("week1.csv", timesheetHeaders, [][]string{
		{"John A Smith", "", "", "", ""},
		{"", "2024-09-15", "Bridge Inspection", "08:00", "25.00"},
		{"", "2024-09-16", "Site Survey", "04:30", "25.00"},
		{"Total for John A Smith", "", "", "", ""},
		{"Jane Doe", "", "", "", ""},
		{"", "2024-09-16", "Bridge Inspection", "06:15", "30.00"},
		{"", "TOTAL", "", "", ""},
	})
	week2 := tableFromRows("week2.csv", timesheetHeaders, nil)

	entries, err := Normalize(week1, week2)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Employee != "John A Smith" || entries[1].Employee != "John A Smith" {
		t.Fatalf("expected first two entries for John A Smith, got %q / %q", entries[0].Employee, entries[1].Employee)
	}
	if entries[2].Employee != "Jane Doe" {
		t.Fatalf("expected third entry for Jane Doe, got %q", entries[2].Employee)
	}
	if math.Abs(entries[1].Hours-4.5) > 1e-9 {
		t.Fatalf("unexpected duration: %v", entries[1].Hours)
	}
	if entries[0].Week != 1 {
		t.Fatalf("expected week 1, got %d", entries[0].Week)
	}
}

func TestNormalizeRejectsMissingColumns(t *testing.T) {
	t.Parallel()

	week1 := tableFromRows("week1.csv", []string{"", "Activity date", "Duration"}, nil)
	week2 := tableFromRows("week2.csv", timesheetHeaders, nil)

	_, err := Normalize(week1, week2)
	if err == nil {
		t.Fatalf("expected missing-column error")
	}

	var missingErr *MissingColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingColumnsError, got %T: %v", err, err)
	}
	if missingErr.Path != "week1.csv" {
		t.Fatalf("unexpected path: %s", missingErr.Path)
	}
	if !reflect.DeepEqual(missingErr.Missing, []string{"Customer full name", "Rates"}) {
		t.Fatalf("unexpected missing columns: %v", missingErr.Missing)
	}
}

func TestNormalizeReportsWeekOneFirstWhenBothMalformed(t *testing.T) {
	t.Parallel()

	week1 := tableFromRows("week1.csv", []string{"", "Activity date", "Duration"}, nil)
	week2 := tableFromRows("week2.csv", []string{"", "Activity date", "Duration"}, nil)

	_, err := Normalize(week1, week2)

	var missingErr *MissingColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingColumnsError, got %T: %v", err, err)
	}
	if missingErr.Path != "week1.csv" {
		t.Fatalf("week 1 must be validated first: %s", missingErr.Path)
	}
}

func TestNormalizeAssignsWeekBySourceFile(t *testing.T) {
	t.Parallel()

	week1 := tableFromRows("week1.csv", timesheetHeaders, [][]string{
		{"Jane Doe", "", "", "", ""},
		{"", "2024-09-15", "Site Survey", "08:00", "30.00"},
	})
	week2 := tableFromRows("week2.csv", timesheetHeaders, [][]string{
		{"Jane Doe", "", "", "", ""},
		{"", "2024-09-22", "Site Survey", "06:00", "30.00"},
	})

	entries, err := Normalize(week1, week2)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Week != 1 || entries[1].Week != 2 {
		t.Fatalf("unexpected week order: %d, %d", entries[0].Week, entries[1].Week)
	}
}

func TestWorkEntryKeyIsStableAcrossDateFormats(t *testing.T) {
	t.Parallel()

	a := WorkEntry{Employee: "Jane Doe", Week: 1, Date: "2024-09-15", Job: "Site Survey", Hours: 7.8333}
	b := WorkEntry{Employee: "Jane Doe", Week: 1, Date: "2024-09-15", Job: "Site Survey", Hours: 7.83331}

	if a.Key() != b.Key() {
		t.Fatalf("expected keys rounded to 4 decimals to match: %q vs %q", a.Key(), b.Key())
	}

	c := WorkEntry{Employee: "Jane Doe", Week: 2, Date: "2024-09-15", Job: "Site Survey", Hours: 7.8333}
	if a.Key() == c.Key() {
		t.Fatalf("expected week to differentiate keys")
	}
}

func TestUnknownEmployees(t *testing.T) {
	t.Parallel()

	entries := []WorkEntry{
		{Employee: "Jane Doe"},
		{Employee: "John A Smith"},
		{Employee: "Jane Doe"},
	}
	known := map[string]struct{}{"Jane Doe": {}}

	unknown := UnknownEmployees(entries, known)
	if !reflect.DeepEqual(unknown, []string{"John A Smith"}) {
		t.Fatalf("unexpected unknown list: %v", unknown)
	}
}
