package reconcile

import "sort"

// Report is the full reconciliation picture for one pay period.
type Report struct {
	Results             []Result
	UnmatchedCalculated []string
	UnmatchedPaychex    []string
}

var statusPriority = map[Status]int{
	StatusCheck:      0,
	StatusAdjusted:   1,
	StatusReconciled: 2,
}

// BuildReport sorts results so the rows needing attention come first,
// check before adjusted before reconciled, alphabetical within each
// bucket.
func BuildReport(results []Result, unmatchedCalculated, unmatchedPaychex []string) *Report {
	sorted := append([]Result(nil), results...)
	sort.Slice(sorted, func(i, j int) bool {
		if statusPriority[sorted[i].Status] != statusPriority[sorted[j].Status] {
			return statusPriority[sorted[i].Status] < statusPriority[sorted[j].Status]
		}
		return sorted[i].Employee < sorted[j].Employee
	})

	return &Report{
		Results:             sorted,
		UnmatchedCalculated: unmatchedCalculated,
		UnmatchedPaychex:    unmatchedPaychex,
	}
}

// Counts returns how many employees landed in each status bucket.
func (r *Report) Counts() (reconciled, adjusted, check int) {
	for _, result := range r.Results {
		switch result.Status {
		case StatusReconciled:
			reconciled++
		case StatusAdjusted:
			adjusted++
		case StatusCheck:
			check++
		}
	}
	return reconciled, adjusted, check
}

// TotalCalculated sums the calculated side across all results.
func (r *Report) TotalCalculated() float64 {
	total := 0.0
	for _, result := range r.Results {
		total += result.Calculated
	}
	return round2(total)
}

// TotalPaychex sums the payroll side across matched results.
func (r *Report) TotalPaychex() float64 {
	total := 0.0
	for _, result := range r.Results {
		if result.HasPaychex {
			total += result.Paychex
		}
	}
	return round2(total)
}

// OverallDifference is the net cents left on the table after matching.
func (r *Report) OverallDifference() float64 {
	return round2(r.TotalCalculated() - r.TotalPaychex())
}
