package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"jobcost/config"
	"jobcost/engine"
	"jobcost/overtime"
	"jobcost/reconcile"
	"jobcost/report"
	"jobcost/roster"

	"github.com/spf13/cobra"
)

var (
	processWeek1       string
	processWeek2       string
	processPaychex     string
	processAllocations string
	processOutput      string
	processFormat      string
	processDBPath      string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full job-cost allocation and reconciliation pipeline",
	Long: `Read both weekly timesheet exports, allocate overtime, price every entry
from the employee roster, and write the job-cost allocation report.

Overtime allocation uses the decisions in --allocations when provided
(produced by "jobcost detect" plus your per-job choices); without them,
overtime is split proportionally across each over-threshold week.

When --paychex is supplied, calculated totals are matched against the
payroll register and reconciled per employee.`,
	Example: `
  # Proportional overtime split, Excel output
  jobcost process --week1 week1.csv --week2 week2.csv --output allocation.xlsx

  # Directed overtime allocation with payroll reconciliation
  jobcost process --week1 week1.csv --week2 week2.csv --paychex register.csv --allocations allocations.json --output allocation.xlsx

  # CSV output with an explicit roster database
  jobcost process --week1 week1.txt --week2 week2.txt --output allocation.csv --format csv --db ./jobcost.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		directory, err := loadDirectory(processDBPath, cfg)
		if err != nil {
			return err
		}

		allocations, err := loadAllocations(processAllocations)
		if err != nil {
			return err
		}

		outcome, err := engine.Process(engine.Options{
			Week1Path:         processWeek1,
			Week2Path:         processWeek2,
			PaychexPath:       processPaychex,
			Allocations:       allocations,
			Directory:         directory,
			OvertimeThreshold: cfg.Payroll.OvertimeThreshold,
			StandardHours:     cfg.Payroll.StandardBiweeklyHours,
			Tolerance:         cfg.Payroll.ReconcileTolerance,
		})
		if errors.Is(err, engine.ErrUnknownEmployees) {
			fmt.Println("The following timesheet employees are not in the roster:")
			for _, name := range outcome.UnknownEmployees {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Println("Add them with: jobcost roster add --name \"<name>\" --type hourly|salaried --rate <rate>")
			return err
		}
		if err != nil {
			return err
		}

		format := processFormat
		if strings.TrimSpace(format) == "" {
			format = detectOutputFormat(processOutput, cfg.Output.Format)
		}
		writer, err := report.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(processOutput, outcome.Report); err != nil {
			return err
		}

		printOutcome(outcome, format)
		return nil
	},
}

func printOutcome(outcome *engine.Outcome, format string) {
	fmt.Printf("Processed %d work entries for %d employees.\n",
		len(outcome.Entries), len(outcome.Report.EmployeeTotals))

	if outcome.Overtime.FallbackUsed {
		fmt.Println("Overtime split proportionally (no directed allocations supplied).")
	} else if outcome.Overtime.DirectedApplied > 0 {
		fmt.Printf("Applied %d directed overtime allocations.\n", outcome.Overtime.DirectedApplied)
	}
	for _, key := range outcome.Overtime.MissedKeys {
		fmt.Fprintf(os.Stderr, "Warning: allocation key not found: %s\n", key)
	}
	for _, name := range outcome.Overtime.DriftEmployees {
		fmt.Fprintf(os.Stderr, "Warning: allocated overtime drifts from detected overtime for %s\n", name)
	}

	for _, total := range outcome.Report.EmployeeTotals {
		fmt.Printf("%s:\n", total.Employee)
		note := ""
		if total.TotalHours != total.PayrolledHours {
			note = fmt.Sprintf(" -> Payrolled: %.2f", total.PayrolledHours)
		}
		fmt.Printf("  Actual Hours: %.2f (Reg: %.2f, OT: %.2f)%s\n",
			total.TotalHours, total.RegularHours, total.OTHours, note)
		fmt.Printf("  Base Rate: $%.2f\n", total.BaseRate)
		if total.HasAdjustedRate {
			fmt.Printf("  Adjusted Rate: $%.2f (salaried)\n", total.AdjustedRate)
		}
		if total.HasOTRate {
			fmt.Printf("  OT Rate: $%.2f\n", total.OTRate)
		}
		fmt.Printf("  Total Cost: $%.2f\n", total.TotalCost)
	}

	fmt.Printf("Grand totals: %.2f actual hours, %.2f payrolled hours, $%.2f total cost.\n",
		outcome.Report.Grand.ActualHours,
		outcome.Report.Grand.PayrolledHours,
		outcome.Report.Grand.TotalCost,
	)

	if outcome.Reconciliation != nil {
		reconciled, adjusted, check := outcome.Reconciliation.Counts()
		fmt.Printf("Reconciliation: %d reconciled, %d adjusted, %d to check. Overall difference: $%.2f\n",
			reconciled, adjusted, check, outcome.Reconciliation.OverallDifference())
		for _, result := range outcome.Reconciliation.Results {
			if result.Status != reconcile.StatusCheck {
				continue
			}
			if result.HasPaychex {
				fmt.Printf("  CHECK %s: calculated $%.2f vs paychex $%.2f (diff $%.2f)\n",
					result.Employee, result.Calculated, result.Paychex, result.Difference)
			} else {
				fmt.Printf("  CHECK %s: no paychex row (calculated $%.2f)\n",
					result.Employee, result.Calculated)
			}
		}
		for _, name := range outcome.Reconciliation.UnmatchedPaychex {
			fmt.Fprintf(os.Stderr, "Warning: paychex employee not matched: %s\n", name)
		}
	}

	fmt.Printf("Report written. Format: %s, File: %s\n", format, processOutput)
}

func loadDirectory(dbPath string, cfg *config.Config) (roster.Directory, error) {
	path := dbPath
	if strings.TrimSpace(path) == "" {
		path = cfg.Roster.DBPath
	}

	store, err := roster.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.Snapshot()
}

func loadAllocations(path string) (overtime.Allocation, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allocations file: %w", err)
	}

	var allocations overtime.Allocation
	if err := json.Unmarshal(content, &allocations); err != nil {
		return nil, fmt.Errorf("parse allocations file %s: %w", path, err)
	}
	return allocations, nil
}

func detectOutputFormat(path, configured string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return "csv"
	case strings.HasSuffix(lower, ".xlsx"):
		return "excel"
	default:
		return configured
	}
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processWeek1, "week1", "", "Week 1 timesheet export")
	processCmd.Flags().StringVar(&processWeek2, "week2", "", "Week 2 timesheet export")
	processCmd.Flags().StringVar(&processPaychex, "paychex", "", "Paychex payroll register for reconciliation (optional)")
	processCmd.Flags().StringVar(&processAllocations, "allocations", "", "JSON file with directed overtime allocations (optional)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output report path")
	processCmd.Flags().StringVarP(&processFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	processCmd.Flags().StringVar(&processDBPath, "db", "", "Path to roster SQLite database (default from config)")

	_ = processCmd.MarkFlagRequired("week1")
	_ = processCmd.MarkFlagRequired("week2")
	_ = processCmd.MarkFlagRequired("output")
}
