package timesheet

import (
	"math"
	"testing"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want float64
	}{
		{"03:30", 3.5},
		{"8:15", 8.25},
		{"00:45", 0.75},
		{"10:00", 10.0},
		{"7", 7.0},
		{" 02:30 ", 2.5},
		{"", 0.0},
		{"abc", 0.0},
		{"3:xx", 0.0},
	}

	for _, tc := range cases {
		if got := ParseDuration(tc.raw); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ParseDuration(%q): want %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	if got := NormalizeHeader(" Customer full name "); got != "customerfullname" {
		t.Fatalf("unexpected normalized header: %s", got)
	}
	if got := NormalizeHeader("Activity_date"); got != "activitydate" {
		t.Fatalf("unexpected normalized header: %s", got)
	}
}
