package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(`roster:
  db_path: "./jobcost.db"
`))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}

	if cfg.Payroll.OvertimeThreshold != 40 {
		t.Fatalf("unexpected overtime threshold: %v", cfg.Payroll.OvertimeThreshold)
	}
	if cfg.Payroll.StandardBiweeklyHours != 80 {
		t.Fatalf("unexpected standard hours: %v", cfg.Payroll.StandardBiweeklyHours)
	}
	if cfg.Payroll.ReconcileTolerance != 0.05 {
		t.Fatalf("unexpected tolerance: %v", cfg.Payroll.ReconcileTolerance)
	}
	if cfg.Output.Format != "excel" {
		t.Fatalf("unexpected output format: %v", cfg.Output.Format)
	}
}

func TestValidateYAMLContent_RejectsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := ValidateYAMLContent([]byte(`roster:
  db_path: "./jobcost.db"
output:
  format: "pdf"
`))
	if err == nil {
		t.Fatalf("expected validation error for unsupported format")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsNonPositiveThreshold(t *testing.T) {
	t.Parallel()

	_, err := ValidateYAMLContent([]byte(`roster:
  db_path: "./jobcost.db"
payroll:
  overtime_threshold: 0
`))
	if err == nil {
		t.Fatalf("expected validation error for zero overtime threshold")
	}
}

func TestExampleYAMLValidates(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example config must validate: %v", err)
	}
}
