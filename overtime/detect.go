package overtime

import (
	"sort"

	"jobcost/roster"
	"jobcost/timesheet"
)

// Candidate is one work entry eligible to absorb overtime hours, identified
// by its content-derived key so a later allocation survives re-reading the
// source files.
type Candidate struct {
	Key   string  `json:"job_key"`
	Date  string  `json:"date"`
	Job   string  `json:"customer"`
	Hours float64 `json:"hours"`
}

// Situation is one employee-week over the weekly threshold, pending an
// allocation decision. Only hourly, non-owner employees produce situations;
// salaried pay is fixed regardless of hours, so a per-entry split is
// meaningless for them.
type Situation struct {
	Employee   string      `json:"employee"`
	Week       int         `json:"week"`
	WeekHours  float64     `json:"total_week_hours"`
	OTHours    float64     `json:"total_ot_hours"`
	Candidates []Candidate `json:"jobs"`
}

// GroupKey matches the allocation payload key for this employee-week.
func (s Situation) GroupKey() string {
	return timesheet.WorkEntry{Employee: s.Employee, Week: s.Week}.GroupKey()
}

func weeklyTotals(entries []timesheet.WorkEntry) map[string]float64 {
	totals := make(map[string]float64, 32)
	for _, entry := range entries {
		totals[entry.GroupKey()] += entry.Hours
	}
	return totals
}

// Detect finds every employee-week whose hours exceed threshold and lists
// its entries as allocation candidates. Output is sorted by employee then
// week for deterministic presentation.
func Detect(entries []timesheet.WorkEntry, directory roster.Directory, threshold float64) []Situation {
	totals := weeklyTotals(entries)

	grouped := make(map[string][]timesheet.WorkEntry, len(totals))
	for _, entry := range entries {
		grouped[entry.GroupKey()] = append(grouped[entry.GroupKey()], entry)
	}

	situations := make([]Situation, 0, 4)
	for group, weekEntries := range grouped {
		total := totals[group]
		if total <= threshold {
			continue
		}

		first := weekEntries[0]
		emp, ok := directory[first.Employee]
		if !ok || emp.IsSalaried() || !emp.ShouldJobCost() {
			continue
		}

		candidates := make([]Candidate, 0, len(weekEntries))
		for _, entry := range weekEntries {
			candidates = append(candidates, Candidate{
				Key:   entry.Key(),
				Date:  entry.Date,
				Job:   entry.Job,
				Hours: entry.Hours,
			})
		}

		situations = append(situations, Situation{
			Employee:   first.Employee,
			Week:       first.Week,
			WeekHours:  total,
			OTHours:    total - threshold,
			Candidates: candidates,
		})
	}

	sort.Slice(situations, func(i, j int) bool {
		if situations[i].Employee == situations[j].Employee {
			return situations[i].Week < situations[j].Week
		}
		return situations[i].Employee < situations[j].Employee
	})

	return situations
}
