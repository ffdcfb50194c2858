package costing

import (
	"sort"

	"jobcost/roster"
	"jobcost/timesheet"
)

// TotalHoursByEmployee sums each employee's hours across both weeks, the
// figure the salaried rate adjustment keys off.
func TotalHoursByEmployee(entries []timesheet.WorkEntry) map[string]float64 {
	totals := make(map[string]float64, 32)
	for _, entry := range entries {
		totals[entry.Employee] += entry.Hours
	}
	return totals
}

// ApplyCosts attaches the resolved rate and regular/OT/total cost to every
// entry in place. Overtime is paid at 1.5x; salaried entries never carry
// overtime hours by the time this runs.
func ApplyCosts(entries []timesheet.WorkEntry, directory roster.Directory, standardHours float64) {
	totalHours := TotalHoursByEmployee(entries)

	for i := range entries {
		entry := &entries[i]
		emp, ok := directory[entry.Employee]
		if !ok {
			// Normalization validates the roster before costing runs.
			entry.Rate = 0
		} else {
			entry.Rate, _, _ = ResolveRate(emp, totalHours[entry.Employee], standardHours)
		}

		entry.RegularCost = entry.RegularHours * entry.Rate
		entry.OTCost = entry.OTHours * entry.Rate * OTMultiplier
		entry.TotalCost = entry.RegularCost + entry.OTCost
	}
}

// JobSummary is one (employee, job) aggregate row for the summary table.
type JobSummary struct {
	Employee     string
	Job          string
	RegularHours float64
	OTHours      float64
	Rate         float64
	RegularCost  float64
	OTCost       float64
	TotalCost    float64
}

// BuildJobSummaries groups costed entries by employee and job, sorted by
// employee then job, values rounded to 2 decimals.
func BuildJobSummaries(entries []timesheet.WorkEntry) []JobSummary {
	type groupKey struct {
		employee string
		job      string
	}

	grouped := make(map[groupKey]*JobSummary, len(entries))
	for _, entry := range entries {
		key := groupKey{employee: entry.Employee, job: entry.Job}
		summary, ok := grouped[key]
		if !ok {
			summary = &JobSummary{Employee: entry.Employee, Job: entry.Job, Rate: entry.Rate}
			grouped[key] = summary
		}
		summary.RegularHours += entry.RegularHours
		summary.OTHours += entry.OTHours
		summary.RegularCost += entry.RegularCost
		summary.OTCost += entry.OTCost
		summary.TotalCost += entry.TotalCost
	}

	summaries := make([]JobSummary, 0, len(grouped))
	for _, summary := range grouped {
		summary.RegularHours = round2(summary.RegularHours)
		summary.OTHours = round2(summary.OTHours)
		summary.RegularCost = round2(summary.RegularCost)
		summary.OTCost = round2(summary.OTCost)
		summary.TotalCost = round2(summary.TotalCost)
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Employee == summaries[j].Employee {
			return summaries[i].Job < summaries[j].Job
		}
		return summaries[i].Employee < summaries[j].Employee
	})

	return summaries
}
