// Package report builds the job-cost allocation output and writes it
// as CSV or Excel.
package report

import (
	"jobcost/costing"
)

// AllocationHeaders is the column order of the allocation sheet.
var AllocationHeaders = []string{"Employee Name", "Project/Job Code", "Hours", "Rate", "Amount", "Rate Type", "Notes"}

// Row is one line of the allocation sheet. The sheet mixes job lines
// with per-employee reconciliation lines, so most columns are optional:
// nil pointers and empty strings render as blank cells. RateText holds
// either a formatted rate or a label like "Calculated:"; NotesAmount is
// set when the notes column carries a dollar figure instead of text.
type Row struct {
	Employee    string
	Job         string
	Hours       *float64
	RateText    string
	Amount      *float64
	RateType    string
	Notes       string
	NotesAmount *float64
}

// Report is everything the writers put on disk.
type Report struct {
	Rows           []Row
	JobSummaries   []costing.JobSummary
	EmployeeTotals []costing.EmployeeTotal
	Grand          costing.GrandTotals
}
