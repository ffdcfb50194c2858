package costing

import (
	"math"
	"testing"

	"jobcost/roster"
)

func TestAdjustedRateKeepsTotalPayConstant(t *testing.T) {
	t.Parallel()

	// 67.36 × 80 / 95 = 56.7242...
	got := AdjustedRate(67.36, 95, 80)
	if math.Abs(got-56.7242) > 1e-9 {
		t.Fatalf("unexpected adjusted rate: %v", got)
	}
}

func TestAdjustedRateNeverInflatesUnderHours(t *testing.T) {
	t.Parallel()

	if got := AdjustedRate(40.00, 72, 80); got != 40.00 {
		t.Fatalf("expected base rate for under-hours, got %v", got)
	}
	if got := AdjustedRate(40.00, 80, 80); got != 40.00 {
		t.Fatalf("expected base rate at exactly standard hours, got %v", got)
	}
	if got := AdjustedRate(40.00, 0, 80); got != 40.00 {
		t.Fatalf("expected base rate for zero hours, got %v", got)
	}
}

func TestAdjustedRateIsMonotonic(t *testing.T) {
	t.Parallel()

	previous := math.Inf(1)
	for hours := 81.0; hours <= 120.0; hours += 0.5 {
		rate := AdjustedRate(55.04, hours, 80)
		if rate >= previous {
			t.Fatalf("rate not strictly decreasing at %v hours: %v >= %v", hours, rate, previous)
		}
		previous = rate
	}
}

func TestResolveRate(t *testing.T) {
	t.Parallel()

	hourly := roster.Employee{Name: "John A Smith", Type: roster.TypeHourly, BaseRate: 25.00}
	rate, base, adjusted := ResolveRate(hourly, 95, 80)
	if rate != 25.00 || base != 25.00 || adjusted {
		t.Fatalf("hourly employee must always use base rate: %v %v %v", rate, base, adjusted)
	}

	salaried := roster.Employee{Name: "Jane Doe", Type: roster.TypeSalaried, BaseRate: 67.36}
	rate, base, adjusted = ResolveRate(salaried, 95, 80)
	if !adjusted || base != 67.36 {
		t.Fatalf("expected adjusted salaried rate: %v %v %v", rate, base, adjusted)
	}
	if math.Abs(rate-56.7242) > 1e-9 {
		t.Fatalf("unexpected adjusted rate: %v", rate)
	}

	rate, _, adjusted = ResolveRate(salaried, 80, 80)
	if adjusted || rate != 67.36 {
		t.Fatalf("expected unadjusted rate at standard hours: %v %v", rate, adjusted)
	}
}
