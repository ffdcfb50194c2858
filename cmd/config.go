package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobcost/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jobcost configuration file values.",
	Long: `Create and display the jobcost configuration file.

The configuration stores application-wide values:
- roster.db_path
- payroll.overtime_threshold
- payroll.standard_biweekly_hours
- payroll.reconcile_tolerance
- output.format`,
	Example: `
  # Create default config in $HOME/.jobcost.yaml
  jobcost config create

  # Show active config and source file
  jobcost config show
`,
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file with default values.

If a configuration file is already in use, no new file is written.`,
	Example: `
  # Create default config at $HOME/.jobcost.yaml
  jobcost config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("Config file already exists at: %s\n", configPath)
			return nil
		}

		if err := os.WriteFile(configPath, []byte(config.ExampleYAML()), 0o644); err != nil {
			return fmt.Errorf("write config file %s: %w", configPath, err)
		}

		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  jobcost config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file found, showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("roster.db_path: %s\n", cfg.Roster.DBPath)
		fmt.Printf("payroll.overtime_threshold: %g\n", cfg.Payroll.OvertimeThreshold)
		fmt.Printf("payroll.standard_biweekly_hours: %g\n", cfg.Payroll.StandardBiweeklyHours)
		fmt.Printf("payroll.reconcile_tolerance: %g\n", cfg.Payroll.ReconcileTolerance)
		fmt.Printf("output.format: %s\n", cfg.Output.Format)
	},
}

func resolveConfigPath(flagPath, activePath string) (string, error) {
	if strings.TrimSpace(flagPath) != "" {
		return flagPath, nil
	}
	if strings.TrimSpace(activePath) != "" {
		return activePath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".jobcost.yaml"), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCreateCmd)
	configCmd.AddCommand(configShowCmd)
}
