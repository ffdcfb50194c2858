package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectOutputFormat(t *testing.T) {
	t.Parallel()

	if got := detectOutputFormat("report.csv", "excel"); got != "csv" {
		t.Fatalf("expected csv, got %s", got)
	}
	if got := detectOutputFormat("report.xlsx", "csv"); got != "excel" {
		t.Fatalf("expected excel, got %s", got)
	}
	if got := detectOutputFormat("report.out", "excel"); got != "excel" {
		t.Fatalf("expected configured fallback, got %s", got)
	}
}

func TestLoadAllocations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "allocations.json")
	content := `{"John A Smith_1": {"John A Smith|1|2024-09-16|Bridge Inspection|9": 5}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	allocations, err := loadAllocations(path)
	if err != nil {
		t.Fatalf("load allocations: %v", err)
	}
	if allocations["John A Smith_1"]["John A Smith|1|2024-09-16|Bridge Inspection|9"] != 5 {
		t.Fatalf("unexpected allocations: %+v", allocations)
	}

	if _, err := loadAllocations(""); err != nil {
		t.Fatalf("empty path must be a no-op: %v", err)
	}

	if _, err := loadAllocations(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadAllocationsRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"group": "not a map"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := loadAllocations(path); err == nil {
		t.Fatal("expected error for malformed allocations")
	}
}
