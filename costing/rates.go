package costing

import (
	"math"

	"jobcost/roster"
)

// DefaultStandardHours is the standard biweekly hours a salary covers.
const DefaultStandardHours = 80.0

// OTMultiplier is the hourly overtime premium (time and a half).
const OTMultiplier = 1.5

// AdjustedRate computes the implied hourly rate for a salaried employee who
// worked more than the standard hours. Total pay must not vary with hours
// for salaried staff, so the rate shrinks as hours grow:
// adjusted = base × standard ÷ actual, rounded to 4 decimals. Hours at or
// under standard never inflate the rate.
func AdjustedRate(baseRate, totalHours, standardHours float64) float64 {
	if totalHours <= 0 || totalHours <= standardHours {
		return baseRate
	}
	return math.Round(baseRate*standardHours/totalHours*10000) / 10000
}

// ResolveRate returns the rate to apply to an employee's entries for this
// pay period: base rate for hourly staff, the adjusted rate for salaried
// staff over standard hours.
func ResolveRate(emp roster.Employee, totalHours, standardHours float64) (rate, baseRate float64, adjusted bool) {
	baseRate = emp.BaseRate
	if !emp.IsSalaried() {
		return baseRate, baseRate, false
	}

	rate = AdjustedRate(baseRate, totalHours, standardHours)
	return rate, baseRate, rate != baseRate
}
