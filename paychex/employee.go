// Package paychex parses payroll register exports and matches their
// employees against timesheet names.
package paychex

// Employee is one payroll row: what Paychex actually paid out for the
// two-week period.
type Employee struct {
	RawName        string
	NormalizedName string
	GrossWages     float64
	RegularHours   float64
	OTHours        float64
	PTOHours       float64
	HolidayHours   float64
	OtherHours     float64
	BaseRate       float64
}

// TotalHours sums every paid-hours bucket, including PTO and holiday
// time that never shows up on a timesheet.
func (e Employee) TotalHours() float64 {
	return e.RegularHours + e.OTHours + e.PTOHours + e.HolidayHours + e.OtherHours
}
