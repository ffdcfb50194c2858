package costing

import (
	"math"
	"testing"

	"jobcost/roster"
	"jobcost/timesheet"
)

func testDirectory() roster.Directory {
	return roster.Directory{
		"John A Smith": {Name: "John A Smith", Type: roster.TypeHourly, BaseRate: 25.00},
		"Jane Doe":     {Name: "Jane Doe", Type: roster.TypeSalaried, BaseRate: 67.36},
	}
}

func costedEntries() []timesheet.WorkEntry {
	entries := []timesheet.WorkEntry{
		{Employee: "John A Smith", Week: 1, Date: "2024-09-15", Job: "Bridge Inspection", Hours: 45, RegularHours: 40, OTHours: 5},
		{Employee: "Jane Doe", Week: 1, Date: "2024-09-15", Job: "Bridge Inspection", Hours: 50, RegularHours: 50},
		{Employee: "Jane Doe", Week: 2, Date: "2024-09-22", Job: "Site Survey", Hours: 45, RegularHours: 45},
	}
	ApplyCosts(entries, testDirectory(), 80)
	return entries
}

func TestApplyCostsHourlyWithOvertime(t *testing.T) {
	t.Parallel()

	entries := costedEntries()

	smith := entries[0]
	if smith.Rate != 25.00 {
		t.Fatalf("unexpected rate: %v", smith.Rate)
	}
	if math.Abs(smith.RegularCost-1000.00) > 1e-9 {
		t.Fatalf("unexpected regular cost: %v", smith.RegularCost)
	}
	if math.Abs(smith.OTCost-187.50) > 1e-9 {
		t.Fatalf("unexpected overtime cost: %v", smith.OTCost)
	}
}

func TestApplyCostsSalariedAdjustedRate(t *testing.T) {
	t.Parallel()

	entries := costedEntries()

	// Jane worked 95 hours: adjusted rate 67.36 × 80 / 95 rounded to 4dp.
	want := math.Round(67.36*80/95*10000) / 10000
	for _, entry := range entries[1:] {
		if math.Abs(entry.Rate-want) > 1e-9 {
			t.Fatalf("unexpected salaried rate: %v", entry.Rate)
		}
		if entry.OTCost != 0 {
			t.Fatalf("salaried entries must carry no OT cost: %v", entry.OTCost)
		}
	}
}

func TestBuildEmployeeTotalsCapsSalariedPayrolledHours(t *testing.T) {
	t.Parallel()

	totals := BuildEmployeeTotals(costedEntries(), testDirectory(), 80)
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(totals))
	}

	// Sorted by name: Jane Doe first.
	jane := totals[0]
	if jane.Employee != "Jane Doe" {
		t.Fatalf("unexpected order: %+v", totals)
	}
	if jane.TotalHours != 95 || jane.PayrolledHours != 80 {
		t.Fatalf("expected payrolled hours capped at 80: %+v", jane)
	}
	if !jane.HasAdjustedRate || jane.HasOTRate {
		t.Fatalf("unexpected rate flags: %+v", jane)
	}

	smith := totals[1]
	if smith.PayrolledHours != 45 {
		t.Fatalf("hourly employees are paid for all hours: %+v", smith)
	}
	if !smith.HasOTRate || smith.OTRate != 37.50 {
		t.Fatalf("expected OT rate 37.50: %+v", smith)
	}
	if smith.HasAdjustedRate {
		t.Fatalf("hourly employees never get an adjusted rate: %+v", smith)
	}
}

func TestBuildJobSummariesGroupsAndSorts(t *testing.T) {
	t.Parallel()

	summaries := BuildJobSummaries(costedEntries())
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	if summaries[0].Employee != "Jane Doe" || summaries[0].Job != "Bridge Inspection" {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].Job != "Site Survey" {
		t.Fatalf("unexpected second summary: %+v", summaries[1])
	}
	if summaries[2].Employee != "John A Smith" {
		t.Fatalf("unexpected third summary: %+v", summaries[2])
	}
}

func TestSumGrandTotals(t *testing.T) {
	t.Parallel()

	totals := BuildEmployeeTotals(costedEntries(), testDirectory(), 80)
	grand := SumGrandTotals(totals)

	if grand.ActualHours != 140 {
		t.Fatalf("unexpected actual hours: %v", grand.ActualHours)
	}
	if grand.PayrolledHours != 125 {
		t.Fatalf("unexpected payrolled hours: %v", grand.PayrolledHours)
	}
	if grand.TotalCost <= 0 {
		t.Fatalf("unexpected total cost: %v", grand.TotalCost)
	}
}
