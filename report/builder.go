package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"jobcost/costing"
	"jobcost/paychex"
	"jobcost/roster"
	"jobcost/timesheet"
)

// Status markers on the per-employee difference line.
const (
	markReconciled = "✓ Reconciled"
	markAdjusted   = "⚡ Adjusted"
	markCheck      = "⚠️ CHECK"
	markNoPaychex  = "⚠️ NO PAYCHEX"
)

type jobAggregate struct {
	job          string
	regularHours float64
	otHours      float64
	regularCost  float64
	otCost       float64
	rate         float64
}

// Build assembles the full report from costed entries.
func Build(entries []timesheet.WorkEntry, directory roster.Directory, matched map[string]paychex.Employee, standardHours, tolerance float64) *Report {
	totals := costing.BuildEmployeeTotals(entries, directory, standardHours)
	return &Report{
		Rows:           BuildAllocationRows(entries, directory, matched, standardHours, tolerance),
		JobSummaries:   costing.BuildJobSummaries(entries),
		EmployeeTotals: totals,
		Grand:          costing.SumGrandTotals(totals),
	}
}

// BuildAllocationRows produces the allocation sheet: per employee, one
// line per job for regular hours, a separate 1.5x line per job with
// overtime, then a calculated-versus-paid pair of lines and a blank
// separator. Employees and jobs are ordered alphabetically.
func BuildAllocationRows(entries []timesheet.WorkEntry, directory roster.Directory, matched map[string]paychex.Employee, standardHours, tolerance float64) []Row {
	totalHours := costing.TotalHoursByEmployee(entries)

	rows := make([]Row, 0, len(entries)*2)
	for _, name := range sortedEmployees(entries) {
		rows = append(rows, employeeRows(name, aggregateJobs(entries, name), directory, matched, totalHours[name], standardHours, tolerance)...)
	}
	return rows
}

func employeeRows(name string, jobs []jobAggregate, directory roster.Directory, matched map[string]paychex.Employee, totalHours, standardHours, tolerance float64) []Row {
	emp := directory[name]
	rate, baseRate, adjusted := costing.ResolveRate(emp, totalHours, standardHours)
	usePrecise := emp.IsSalaried() && adjusted

	rateType := "Base"
	hoursNote := ""
	if usePrecise {
		rateType = "Adjusted"
		hoursNote = fmt.Sprintf("%.1fhrs total", totalHours)
	}

	var data *paychex.Employee
	if employee, ok := matched[name]; ok {
		data = &employee
	}

	var precise costing.PreciseAllocation
	if usePrecise {
		jobHours := make([]costing.JobHours, 0, len(jobs))
		for _, agg := range jobs {
			jobHours = append(jobHours, costing.JobHours{Job: agg.job, RegularHours: agg.regularHours})
		}
		var gross *float64
		if data != nil {
			gross = &data.GrossWages
		}
		precise = costing.PreciseSalariedAmounts(jobHours, baseRate, totalHours, gross, standardHours)
	}

	rows := make([]Row, 0, len(jobs)*2+3)
	calculatedTotal := 0.0
	firstRow := true

	for _, agg := range jobs {
		if agg.regularHours > 0 {
			var amount float64
			var rateText string
			if usePrecise {
				amount = precise.Amounts[agg.job]
				rateText = formatRate(precise.Rate, 6)
			} else {
				amount = round2(agg.regularCost)
				if adjusted {
					rateText = formatRate(rate, 4)
				} else {
					rateText = formatRate(rate, 2)
				}
			}

			notes := ""
			if firstRow && hoursNote != "" {
				notes = hoursNote
			}

			rows = append(rows, Row{
				Employee: name,
				Job:      agg.job,
				Hours:    ptr(round2(agg.regularHours)),
				RateText: rateText,
				Amount:   ptr(amount),
				RateType: rateType,
				Notes:    notes,
			})
			calculatedTotal += amount
			firstRow = false
		}

		if agg.otHours > 0 {
			rows = append(rows, Row{
				Employee: name,
				Job:      agg.job,
				Hours:    ptr(round2(agg.otHours)),
				RateText: formatRate(agg.rate*costing.OTMultiplier, 2),
				Amount:   ptr(round2(agg.otCost)),
				RateType: "OT 1.5x",
				Notes:    "Overtime",
			})
			calculatedTotal += agg.otCost
		}
	}

	// Calculated-versus-paid pair. Three decimals so sub-cent drift is
	// visible instead of rounding away.
	summary := Row{
		Employee: name,
		RateText: "Calculated:",
		Amount:   ptr(round3(calculatedTotal)),
		RateType: "Paychex:",
	}
	if data != nil {
		summary.NotesAmount = ptr(round3(data.GrossWages))
	} else {
		summary.Notes = "N/A"
	}
	rows = append(rows, summary)

	var difference float64
	var status string
	if data != nil {
		difference = round3(calculatedTotal - data.GrossWages)
		switch {
		case difference == 0:
			status = markReconciled
		case math.Abs(difference) <= tolerance:
			status = markAdjusted
		default:
			status = markCheck
		}
	} else {
		difference = calculatedTotal
		status = markNoPaychex
	}

	rows = append(rows, Row{
		RateText: "Difference:",
		Amount:   ptr(round3(difference)),
		Notes:    status,
	})
	rows = append(rows, Row{})

	return rows
}

func aggregateJobs(entries []timesheet.WorkEntry, employee string) []jobAggregate {
	grouped := make(map[string]*jobAggregate)
	for _, entry := range entries {
		if entry.Employee != employee {
			continue
		}
		agg, ok := grouped[entry.Job]
		if !ok {
			agg = &jobAggregate{job: entry.Job, rate: entry.Rate}
			grouped[entry.Job] = agg
		}
		agg.regularHours += entry.RegularHours
		agg.otHours += entry.OTHours
		agg.regularCost += entry.RegularCost
		agg.otCost += entry.OTCost
	}

	jobs := make([]jobAggregate, 0, len(grouped))
	for _, agg := range grouped {
		jobs = append(jobs, *agg)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].job < jobs[j].job })
	return jobs
}

func sortedEmployees(entries []timesheet.WorkEntry) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, 16)
	for _, entry := range entries {
		if !seen[entry.Employee] {
			seen[entry.Employee] = true
			names = append(names, entry.Employee)
		}
	}
	sort.Strings(names)
	return names
}

// formatRate renders a rate rounded to the given precision without
// trailing zeros, the way a spreadsheet displays a plain number.
func formatRate(value float64, places int) string {
	factor := math.Pow(10, float64(places))
	return strconv.FormatFloat(math.Round(value*factor)/factor, 'f', -1, 64)
}

func ptr(value float64) *float64 {
	return &value
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}
