package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"jobcost/config"
	"jobcost/engine"
	"jobcost/overtime"

	"github.com/spf13/cobra"
)

var (
	detectWeek1  string
	detectWeek2  string
	detectOutput string
	detectDBPath string
)

// detectPayload is what gets serialized for the caller to turn into an
// allocations file.
type detectPayload struct {
	HasOvertime  bool                 `json:"has_overtime"`
	OTSituations []overtime.Situation `json:"ot_situations"`
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect overtime situations that need an allocation decision",
	Long: `Read both weekly timesheet exports and report every hourly employee-week
over the overtime threshold, with the candidate job entries that can absorb
the overtime hours.

The JSON output lists each situation keyed the same way "process" expects
its --allocations file, so a caller can assign hours per job key and feed
the result straight back in.`,
	Example: `
  # Print situations to stdout
  jobcost detect --week1 week1.csv --week2 week2.csv

  # Write situations to a file for editing
  jobcost detect --week1 week1.csv --week2 week2.csv --output situations.json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		directory, err := loadDirectory(detectDBPath, cfg)
		if err != nil {
			return err
		}

		detection, err := engine.Detect(engine.Options{
			Week1Path:         detectWeek1,
			Week2Path:         detectWeek2,
			Directory:         directory,
			OvertimeThreshold: cfg.Payroll.OvertimeThreshold,
		})
		if errors.Is(err, engine.ErrUnknownEmployees) {
			fmt.Println("The following timesheet employees are not in the roster:")
			for _, name := range detection.UnknownEmployees {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Println("Add them with: jobcost roster add --name \"<name>\" --type hourly|salaried --rate <rate>")
			return err
		}
		if err != nil {
			return err
		}

		payload := detectPayload{
			HasOvertime:  detection.HasOvertime(),
			OTSituations: detection.Situations,
		}
		encoded, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode situations: %w", err)
		}

		if detectOutput == "" {
			fmt.Println(string(encoded))
		} else {
			if err := os.WriteFile(detectOutput, encoded, 0o644); err != nil {
				return fmt.Errorf("write situations file: %w", err)
			}
			fmt.Printf("Detected %d overtime situations across %d entries. File: %s\n",
				len(detection.Situations), detection.EntryCount, detectOutput)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVar(&detectWeek1, "week1", "", "Week 1 timesheet export")
	detectCmd.Flags().StringVar(&detectWeek2, "week2", "", "Week 2 timesheet export")
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "", "Write situations JSON to this path instead of stdout")
	detectCmd.Flags().StringVar(&detectDBPath, "db", "", "Path to roster SQLite database (default from config)")

	_ = detectCmd.MarkFlagRequired("week1")
	_ = detectCmd.MarkFlagRequired("week2")
}
