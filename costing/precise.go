package costing

import (
	"github.com/shopspring/decimal"
)

const (
	// SourceCalculated means the distribution target was base_rate × standard
	// hours; SourcePaychex means the authoritative payroll total replaced it.
	SourceCalculated = "calculated"
	SourcePaychex    = "paychex"
)

// JobHours is one job's share of a salaried employee's regular hours, in the
// deterministic order amounts are assigned.
type JobHours struct {
	Job          string
	RegularHours float64
}

// PreciseAllocation distributes a salaried employee's fixed pay across jobs
// with zero cent drift: every amount but the last is rounded half-up, and
// the last job absorbs the remainder (the accounting plug).
type PreciseAllocation struct {
	Amounts map[string]float64
	Rate    float64 // target ÷ hours, unrounded
	Target  float64
	Source  string
}

// PreciseSalariedAmounts computes per-job amounts that sum exactly to the
// employee's total pay. The target is base_rate × standard hours rounded to
// the cent; when an authoritative payroll total is supplied and differs by
// more than one cent, the authoritative value becomes the target — that gap
// is a data problem to surface, not a rounding artifact to hide.
func PreciseSalariedAmounts(jobs []JobHours, baseRate, totalHours float64, paychexGross *float64, standardHours float64) PreciseAllocation {
	target := decimal.NewFromFloat(baseRate).
		Mul(decimal.NewFromFloat(standardHours)).
		Round(2)
	source := SourceCalculated

	if paychexGross != nil {
		authoritative := decimal.NewFromFloat(*paychexGross)
		if target.Sub(authoritative).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
			target = authoritative
			source = SourcePaychex
		}
	}

	hours := decimal.NewFromFloat(totalHours)
	preciseRate := decimal.Zero
	if !hours.IsZero() {
		preciseRate = target.Div(hours)
	}

	amounts := make(map[string]float64, len(jobs))
	running := decimal.Zero

	for i, job := range jobs {
		var amount decimal.Decimal
		if i == len(jobs)-1 {
			amount = target.Sub(running)
		} else {
			amount = decimal.NewFromFloat(job.RegularHours).Mul(preciseRate).Round(2)
		}
		amounts[job.Job] = amount.InexactFloat64()
		running = running.Add(amount)
	}

	return PreciseAllocation{
		Amounts: amounts,
		Rate:    preciseRate.InexactFloat64(),
		Target:  target.InexactFloat64(),
		Source:  source,
	}
}
