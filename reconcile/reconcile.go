// Package reconcile compares calculated job-cost totals against what
// payroll actually paid and classifies each employee's variance.
package reconcile

import (
	"fmt"
	"math"

	"jobcost/paychex"
)

type Status string

const (
	// StatusReconciled means the calculated total matches payroll to
	// the cent.
	StatusReconciled Status = "reconciled"
	// StatusAdjusted means the variance is within tolerance and an
	// advisory adjustment closes it.
	StatusAdjusted Status = "adjusted"
	// StatusCheck means the variance needs a human, or no payroll row
	// was found at all.
	StatusCheck Status = "check"
)

// Totals is one employee's calculated side of the comparison.
type Totals struct {
	Wages        float64
	RegularHours float64
	OTHours      float64
	BaseRate     float64
	AdjustedRate float64
	RateAdjusted bool
}

// Result is the outcome of reconciling one employee.
type Result struct {
	Employee               string
	Status                 Status
	Calculated             float64
	Paychex                float64
	Difference             float64
	Adjustment             float64
	HasPaychex             bool
	CalculatedRegularHours float64
	CalculatedOTHours      float64
	PaychexRegularHours    float64
	PaychexOTHours         float64
	PaychexTotalHours      float64
}

// CalculatedTotalHours is the timesheet side of the hours comparison.
func (r Result) CalculatedTotalHours() float64 {
	return r.CalculatedRegularHours + r.CalculatedOTHours
}

// HoursMatch reports whether regular and overtime hours each agree within
// half an hour. Informational only: PTO and holiday time sit in separate
// payroll buckets and never enter the comparison.
func (r Result) HoursMatch() bool {
	if !r.HasPaychex {
		return false
	}
	return math.Abs(r.CalculatedRegularHours-r.PaychexRegularHours) <= 0.5 &&
		math.Abs(r.CalculatedOTHours-r.PaychexOTHours) <= 0.5
}

// Reconcile classifies one employee. Differences are rounded to cents
// before classification so float dust cannot push an exact match into
// the adjusted bucket.
func Reconcile(name string, totals Totals, data *paychex.Employee, tolerance float64) Result {
	result := Result{
		Employee:               name,
		Calculated:             round2(totals.Wages),
		CalculatedRegularHours: totals.RegularHours,
		CalculatedOTHours:      totals.OTHours,
	}

	if data == nil {
		result.Status = StatusCheck
		result.Difference = result.Calculated
		return result
	}

	result.HasPaychex = true
	result.Paychex = round2(data.GrossWages)
	result.PaychexRegularHours = data.RegularHours
	result.PaychexOTHours = data.OTHours
	result.PaychexTotalHours = data.TotalHours()
	result.Difference = round2(result.Calculated - result.Paychex)

	switch {
	case result.Difference == 0:
		result.Status = StatusReconciled
	case math.Abs(result.Difference) <= tolerance:
		result.Status = StatusAdjusted
		result.Adjustment = -result.Difference
	default:
		result.Status = StatusCheck
	}

	return result
}

// RateNote describes a salaried rate adjustment for report footnotes,
// e.g. "Base $67.10 adj to $62.78 (85.5 hrs)".
func RateNote(baseRate, adjustedRate, totalHours float64) string {
	return fmt.Sprintf("Base $%.2f adj to $%.2f (%.1f hrs)", baseRate, adjustedRate, totalHours)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
