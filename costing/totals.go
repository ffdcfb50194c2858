package costing

import (
	"math"
	"sort"

	"jobcost/roster"
	"jobcost/timesheet"
)

// EmployeeTotal is one row of the per-employee totals table. Payrolled
// hours are what payroll should show: salaried employees are capped at
// standard hours, hourly employees are paid for everything they worked.
type EmployeeTotal struct {
	Employee        string
	TotalHours      float64
	PayrolledHours  float64
	RegularHours    float64
	OTHours         float64
	BaseRate        float64
	AdjustedRate    float64
	HasAdjustedRate bool
	OTRate          float64
	HasOTRate       bool
	TotalCost       float64
}

// GrandTotals is the reconciliation footer: payrolled hours are the figure
// that should line up with the payroll export.
type GrandTotals struct {
	ActualHours    float64
	PayrolledHours float64
	TotalCost      float64
}

// BuildEmployeeTotals aggregates costed entries per employee, sorted by
// name.
func BuildEmployeeTotals(entries []timesheet.WorkEntry, directory roster.Directory, standardHours float64) []EmployeeTotal {
	type sums struct {
		hours   float64
		regular float64
		ot      float64
		cost    float64
	}

	byEmployee := make(map[string]*sums, 32)
	for _, entry := range entries {
		s, ok := byEmployee[entry.Employee]
		if !ok {
			s = &sums{}
			byEmployee[entry.Employee] = s
		}
		s.hours += entry.Hours
		s.regular += entry.RegularHours
		s.ot += entry.OTHours
		s.cost += entry.TotalCost
	}

	totals := make([]EmployeeTotal, 0, len(byEmployee))
	for name, s := range byEmployee {
		emp := directory[name]
		rate, baseRate, adjusted := ResolveRate(emp, s.hours, standardHours)

		payrolled := s.hours
		if emp.IsSalaried() {
			payrolled = math.Min(s.hours, standardHours)
		}

		total := EmployeeTotal{
			Employee:       name,
			TotalHours:     round2(s.hours),
			PayrolledHours: round2(payrolled),
			RegularHours:   round2(s.regular),
			OTHours:        round2(s.ot),
			BaseRate:       round2(baseRate),
			TotalCost:      round2(s.cost),
		}

		if emp.IsSalaried() && adjusted {
			total.AdjustedRate = round2(rate)
			total.HasAdjustedRate = true
		}
		if !emp.IsSalaried() && s.ot > 0 {
			total.OTRate = round2(baseRate * OTMultiplier)
			total.HasOTRate = true
		}

		totals = append(totals, total)
	}

	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Employee < totals[j].Employee
	})

	return totals
}

func SumGrandTotals(totals []EmployeeTotal) GrandTotals {
	var grand GrandTotals
	for _, total := range totals {
		grand.ActualHours += total.TotalHours
		grand.PayrolledHours += total.PayrolledHours
		grand.TotalCost += total.TotalCost
	}
	grand.ActualHours = round2(grand.ActualHours)
	grand.PayrolledHours = round2(grand.PayrolledHours)
	grand.TotalCost = round2(grand.TotalCost)
	return grand
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
