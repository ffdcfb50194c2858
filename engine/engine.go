// Package engine runs the job-cost pipeline end to end: read, normalize,
// allocate overtime, cost, match payroll, reconcile, and report.
package engine

import (
	"errors"
	"fmt"

	"jobcost/costing"
	"jobcost/overtime"
	"jobcost/paychex"
	"jobcost/reconcile"
	"jobcost/report"
	"jobcost/roster"
	"jobcost/timesheet"
)

// ErrUnknownEmployees halts the run before any numbers are produced:
// costing with a missing roster entry would silently use a zero rate.
var ErrUnknownEmployees = errors.New("timesheet contains employees missing from the roster")

// Options carries everything one run needs.
type Options struct {
	Week1Path   string
	Week2Path   string
	PaychexPath string

	Allocations overtime.Allocation
	Directory   roster.Directory

	OvertimeThreshold float64
	StandardHours     float64
	Tolerance         float64
}

func (o Options) withDefaults() Options {
	if o.OvertimeThreshold == 0 {
		o.OvertimeThreshold = 40
	}
	if o.StandardHours == 0 {
		o.StandardHours = costing.DefaultStandardHours
	}
	if o.Tolerance == 0 {
		o.Tolerance = 0.05
	}
	return o
}

// Detection is the first-phase result: what the caller must decide on
// before the run can finish.
type Detection struct {
	UnknownEmployees []string
	Situations       []overtime.Situation
	EntryCount       int
}

// HasOvertime reports whether any employee needs an overtime decision.
func (d *Detection) HasOvertime() bool {
	return len(d.Situations) > 0
}

// Outcome is the complete result of a processing run.
type Outcome struct {
	UnknownEmployees []string
	Entries          []timesheet.WorkEntry
	Report           *report.Report
	Reconciliation   *reconcile.Report
	Overtime         overtime.Result
	Match            *paychex.MatchResult
}

// Detect reads both weeks and reports overtime situations without
// producing any output.
func Detect(opts Options) (*Detection, error) {
	opts = opts.withDefaults()

	entries, unknown, err := loadEntries(opts)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return &Detection{UnknownEmployees: unknown}, ErrUnknownEmployees
	}

	return &Detection{
		Situations: overtime.Detect(entries, opts.Directory, opts.OvertimeThreshold),
		EntryCount: len(entries),
	}, nil
}

// Process runs the full pipeline.
func Process(opts Options) (*Outcome, error) {
	opts = opts.withDefaults()

	entries, unknown, err := loadEntries(opts)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return &Outcome{UnknownEmployees: unknown}, ErrUnknownEmployees
	}

	otResult := overtime.Apply(entries, opts.Allocations, opts.Directory, opts.OvertimeThreshold)
	costing.ApplyCosts(entries, opts.Directory, opts.StandardHours)

	matched := map[string]paychex.Employee{}
	var match *paychex.MatchResult
	if opts.PaychexPath != "" {
		data, err := paychex.ReadFile(opts.PaychexPath)
		if err != nil {
			return nil, fmt.Errorf("read paychex file: %w", err)
		}
		result := paychex.Match(timesheet.DistinctEmployees(entries), data, opts.Directory.Aliases())
		match = &result
		matched = result.Matched
	}

	outcome := &Outcome{
		Entries:  entries,
		Report:   report.Build(entries, opts.Directory, matched, opts.StandardHours, opts.Tolerance),
		Overtime: otResult,
		Match:    match,
	}

	if match != nil {
		outcome.Reconciliation = reconcileAll(outcome.Report.EmployeeTotals, match, opts.Tolerance)
	}

	return outcome, nil
}

func loadEntries(opts Options) ([]timesheet.WorkEntry, []string, error) {
	week1, err := timesheet.ReadTimesheet(opts.Week1Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read week 1: %w", err)
	}
	week2, err := timesheet.ReadTimesheet(opts.Week2Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read week 2: %w", err)
	}

	entries, err := timesheet.Normalize(week1, week2)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("no work entries found in %s and %s", opts.Week1Path, opts.Week2Path)
	}

	return entries, timesheet.UnknownEmployees(entries, opts.Directory.NameSet()), nil
}

func reconcileAll(totals []costing.EmployeeTotal, match *paychex.MatchResult, tolerance float64) *reconcile.Report {
	results := make([]reconcile.Result, 0, len(totals))
	for _, total := range totals {
		calculated := reconcile.Totals{
			Wages:        total.TotalCost,
			RegularHours: total.RegularHours,
			OTHours:      total.OTHours,
			BaseRate:     total.BaseRate,
			AdjustedRate: total.AdjustedRate,
			RateAdjusted: total.HasAdjustedRate,
		}

		var data *paychex.Employee
		if employee, ok := match.Matched[total.Employee]; ok {
			data = &employee
		}

		results = append(results, reconcile.Reconcile(total.Employee, calculated, data, tolerance))
	}

	return reconcile.BuildReport(results, match.UnmatchedCalculated, match.UnmatchedPaychex)
}
