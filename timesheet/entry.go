package timesheet

import (
	"fmt"
	"math"
	"strconv"
)

// WorkEntry is one normalized timesheet line: one employee, one pay-period
// week, one activity date, one job. The regular/overtime split and cost
// fields are attached by later pipeline stages.
type WorkEntry struct {
	Employee     string
	Week         int
	ActivityDate string // raw text from the export
	Date         string // canonical 2006-01-02 form when parseable
	Job          string
	Hours        float64

	RegularHours float64
	OTHours      float64
	Rate         float64
	RegularCost  float64
	OTCost       float64
	TotalCost    float64
}

// Key returns the content-derived identifier used to match entries across
// the detect and allocate phases. Row positions are not stable across
// re-reads and merges, so identity is built from the data itself.
func (e WorkEntry) Key() string {
	hours := math.Round(e.Hours*10000) / 10000
	return fmt.Sprintf("%s|%d|%s|%s|%s", e.Employee, e.Week, e.Date, e.Job, strconv.FormatFloat(hours, 'f', -1, 64))
}

// GroupKey identifies one employee-week, the unit an overtime decision
// applies to.
func (e WorkEntry) GroupKey() string {
	return fmt.Sprintf("%s_%d", e.Employee, e.Week)
}
