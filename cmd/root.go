/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"jobcost/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jobcost",
	Short: "Allocate two-week payroll costs to jobs and reconcile against Paychex.",
	Long: `
**********************************************
*               JOB COST                     *
**********************************************

This CLI reads two weekly QuickBooks time-by-job exports, normalizes the
entries, detects and allocates overtime, prices every entry from the local
employee roster, and produces a job-cost allocation report (CSV or Excel).
When a Paychex payroll register is supplied, calculated totals are matched
and reconciled against what was actually paid.

Supported input formats:
- Excel: .xlsx, .xlsm
- CSV: .csv
- Tab-separated: .txt, .tsv (UTF-16 exports are handled)
`,
	Example: `
  # Detect overtime situations needing an allocation decision
  jobcost detect --week1 week1.csv --week2 week2.csv

  # Full run with payroll reconciliation
  jobcost process --week1 week1.csv --week2 week2.csv --paychex register.csv --output allocation.xlsx

  # Full run with a directed overtime allocation file
  jobcost process --week1 week1.csv --week2 week2.csv --allocations allocations.json --output allocation.csv --format csv

  # Manage the employee roster
  jobcost roster add --name "Jane Doe" --type salaried --rate 67.36
  jobcost roster list

  # Start the local web UI
  jobcost serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.jobcost.yaml, then ./.jobcost.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	return cmd != nil && (cmd.Name() == "process" || cmd.Name() == "serve")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jobcost")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults.")
	}
}
