package overtime

import (
	"math"
	"testing"

	"jobcost/timesheet"
)

func TestApplyDirectedAllocation(t *testing.T) {
	t.Parallel()

	entries := []timesheet.WorkEntry{
		entry("John A Smith", 1, "2024-09-15", "Bridge Inspection", 30),
		entry("John A Smith", 1, "2024-09-16", "Site Survey", 15),
	}

	alloc := Allocation{
		"John A Smith_1": {
			entries[1].Key(): 5.0,
		},
	}

	result := Apply(entries, alloc, testDirectory(), 40)
	if result.FallbackUsed {
		t.Fatalf("expected directed mode")
	}
	if result.DirectedApplied != 1 {
		t.Fatalf("expected 1 applied allocation, got %d", result.DirectedApplied)
	}
	if len(result.MissedKeys) != 0 {
		t.Fatalf("unexpected missed keys: %v", result.MissedKeys)
	}

	if math.Abs(entries[1].OTHours-5) > 1e-9 || math.Abs(entries[1].RegularHours-10) > 1e-9 {
		t.Fatalf("unexpected split on targeted entry: reg %v, ot %v", entries[1].RegularHours, entries[1].OTHours)
	}
	if entries[0].OTHours != 0 || math.Abs(entries[0].RegularHours-30) > 1e-9 {
		t.Fatalf("unexpected split on untouched entry: reg %v, ot %v", entries[0].RegularHours, entries[0].OTHours)
	}
}

func TestApplyDirectedReportsMissedKeys(t *testing.T) {
	t.Parallel()

	entries := []timesheet.WorkEntry{
		entry("John A Smith", 1, "2024-09-15", "Bridge Inspection", 45),
	}

	alloc := Allocation{
		"John A Smith_1": {
			"John A Smith|1|2024-09-15|Wrong Job|45": 5.0,
		},
	}

	result := Apply(entries, alloc, testDirectory(), 40)
	if len(result.MissedKeys) != 1 {
		t.Fatalf("expected 1 missed key, got %v", result.MissedKeys)
	}
	if result.DirectedApplied != 0 {
		t.Fatalf("expected no applied allocations, got %d", result.DirectedApplied)
	}
	if entries[0].OTHours != 0 {
		t.Fatalf("expected untouched entry, got ot %v", entries[0].OTHours)
	}
	// The week still carries 5 unassigned overtime hours.
	if len(result.DriftEmployees) != 1 || result.DriftEmployees[0] != "John A Smith" {
		t.Fatalf("expected drift flag for the unallocated week, got %v", result.DriftEmployees)
	}
}

func TestApplyFlagsUnderAllocatedOvertime(t *testing.T) {
	t.Parallel()

	entries := []timesheet.WorkEntry{
		entry("John A Smith", 1, "2024-09-15", "Bridge Inspection", 45),
	}

	// 45 hours leave 5 over the threshold; only 3 were directed.
	alloc := Allocation{
		"John A Smith_1": {entries[0].Key(): 3.0},
	}

	result := Apply(entries, alloc, testDirectory(), 40)
	if len(result.DriftEmployees) != 1 || result.DriftEmployees[0] != "John A Smith" {
		t.Fatalf("expected drift flag, got %v", result.DriftEmployees)
	}
	if math.Abs(entries[0].RegularHours-42) > 1e-9 {
		t.Fatalf("regular hours must still follow the directed split: %v", entries[0].RegularHours)
	}
}

func TestApplyProportionalFallback(t *testing.T) {
	t.Parallel()

	// Hourly employee, 45 hours in week 1 on one job: 5 OT, 40 regular.
	entries := []timesheet.WorkEntry{
		entry("John A Smith", 1, "2024-09-15", "Bridge Inspection", 45),
	}

	result := Apply(entries, nil, testDirectory(), 40)
	if !result.FallbackUsed {
		t.Fatalf("expected fallback mode")
	}
	if math.Abs(entries[0].OTHours-5) > 1e-9 {
		t.Fatalf("expected 5 OT hours, got %v", entries[0].OTHours)
	}
	if math.Abs(entries[0].RegularHours-40) > 1e-9 {
		t.Fatalf("expected 40 regular hours, got %v", entries[0].RegularHours)
	}
	if len(result.DriftEmployees) != 0 {
		t.Fatalf("proportional split matches the excess exactly: %v", result.DriftEmployees)
	}
}

func TestApplyProportionalSplitsAcrossJobs(t *testing.T) {
	t.Parallel()

	entries := []timesheet.WorkEntry{
		entry("John A Smith", 1, "2024-09-15", "Bridge Inspection", 30),
		entry("John A Smith", 1, "2024-09-16", "Site Survey", 20),
	}

	Apply(entries, Allocation{}, testDirectory(), 40)

	// 10 OT hours spread 30/50 and 20/50.
	if math.Abs(entries[0].OTHours-6) > 1e-9 {
		t.Fatalf("expected 6 OT hours on first entry, got %v", entries[0].OTHours)
	}
	if math.Abs(entries[1].OTHours-4) > 1e-9 {
		t.Fatalf("expected 4 OT hours on second entry, got %v", entries[1].OTHours)
	}

	for _, e := range entries {
		if math.Abs(e.RegularHours+e.OTHours-e.Hours) > 1e-6 {
			t.Fatalf("split invariant violated for %+v", e)
		}
	}
}

func TestApplyProportionalNeverAssignsSalariedOvertime(t *testing.T) {
	t.Parallel()

	entries := []timesheet.WorkEntry{
		entry("Jane Doe", 1, "2024-09-15", "Site Survey", 55),
	}

	Apply(entries, nil, testDirectory(), 40)
	if entries[0].OTHours != 0 {
		t.Fatalf("expected zero OT for salaried employee, got %v", entries[0].OTHours)
	}
	if math.Abs(entries[0].RegularHours-55) > 1e-9 {
		t.Fatalf("expected full regular hours, got %v", entries[0].RegularHours)
	}
}

func TestApplyRederivesRegularHours(t *testing.T) {
	t.Parallel()

	entries := []timesheet.WorkEntry{
		entry("John A Smith", 1, "2024-09-15", "Bridge Inspection", 45),
	}
	// Stale split left over from a previous pass.
	entries[0].RegularHours = 1

	alloc := Allocation{
		"John A Smith_1": {entries[0].Key(): 5.0},
	}

	result := Apply(entries, alloc, testDirectory(), 40)
	if math.Abs(entries[0].RegularHours-40) > 1e-9 {
		t.Fatalf("expected regular hours re-derived to 40, got %v", entries[0].RegularHours)
	}
	if len(result.DriftEmployees) != 0 {
		t.Fatalf("unexpected drift: %v", result.DriftEmployees)
	}
}
