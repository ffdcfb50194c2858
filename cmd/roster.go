package cmd

import (
	"strings"

	"jobcost/config"
	"jobcost/roster"

	"github.com/spf13/cobra"
)

var rosterDBPath string

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the employee roster used for job costing",
	Long: `Manage the local SQLite employee roster.

Every timesheet employee must exist in the roster before processing:
the roster carries the pay type (hourly or salaried), the base rate,
and the optional Paychex display name used for payroll matching.`,
	Example: `
  jobcost roster add --name "Jane Doe" --type salaried --rate 67.36 --paychex-name "Doe, Jane"
  jobcost roster list
  jobcost roster remove --name "Jane Doe"
  jobcost roster import --input employees.csv --replace
`,
}

func init() {
	rootCmd.AddCommand(rosterCmd)

	rosterCmd.PersistentFlags().StringVar(&rosterDBPath, "db", "", "Path to roster SQLite database (default from config)")
}

func openRosterStore() (*roster.SQLiteStore, error) {
	path := rosterDBPath
	if strings.TrimSpace(path) == "" {
		config.SetDefaults()
		if cfg, err := config.LoadAndValidate(); err == nil {
			path = cfg.Roster.DBPath
		} else {
			path = "./jobcost.db"
		}
	}
	return roster.OpenSQLite(path)
}
