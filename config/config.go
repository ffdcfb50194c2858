package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyRosterDBPath         = "roster.db_path"
	KeyPayrollOTThreshold   = "payroll.overtime_threshold"
	KeyPayrollStandardHours = "payroll.standard_biweekly_hours"
	KeyPayrollTolerance     = "payroll.reconcile_tolerance"
	KeyOutputFormat         = "output.format"
)

type Config struct {
	Roster  RosterConfig  `mapstructure:"roster" validate:"required"`
	Payroll PayrollConfig `mapstructure:"payroll" validate:"required"`
	Output  OutputConfig  `mapstructure:"output"`
}

type RosterConfig struct {
	DBPath string `mapstructure:"db_path" validate:"required"`
}

type PayrollConfig struct {
	OvertimeThreshold     float64 `mapstructure:"overtime_threshold" validate:"gt=0"`
	StandardBiweeklyHours float64 `mapstructure:"standard_biweekly_hours" validate:"gt=0"`
	ReconcileTolerance    float64 `mapstructure:"reconcile_tolerance" validate:"gte=0"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=csv excel xlsx"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# jobcost configuration
roster:
  db_path: "./jobcost.db"

payroll:
  overtime_threshold: 40
  standard_biweekly_hours: 80
  reconcile_tolerance: 0.05

output:
  format: "excel"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRosterDBPath, "./jobcost.db")
	v.SetDefault(KeyPayrollOTThreshold, 40.0)
	v.SetDefault(KeyPayrollStandardHours, 80.0)
	v.SetDefault(KeyPayrollTolerance, 0.05)
	v.SetDefault(KeyOutputFormat, "excel")
}
