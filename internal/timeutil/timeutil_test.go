package timeutil

import (
	"testing"
	"time"
)

func TestParseActivityDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-09-15", time.Date(2024, 9, 15, 0, 0, 0, 0, time.Local)},
		{"09/15/2024", time.Date(2024, 9, 15, 0, 0, 0, 0, time.Local)},
		{"9/15/2024", time.Date(2024, 9, 15, 0, 0, 0, 0, time.Local)},
		{" 2024-09-15 ", time.Date(2024, 9, 15, 0, 0, 0, 0, time.Local)},
	}

	for _, tc := range cases {
		got, err := ParseActivityDate(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parse %q: want %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestParseActivityDateRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseActivityDate("not a date"); err == nil {
		t.Fatalf("expected error for unparseable date")
	}
	if _, err := ParseActivityDate(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestCanonicalDateUnifiesFormats(t *testing.T) {
	t.Parallel()

	if got := CanonicalDate("09/15/2024"); got != "2024-09-15" {
		t.Fatalf("unexpected canonical date: %s", got)
	}
	if got := CanonicalDate("2024-09-15"); got != "2024-09-15" {
		t.Fatalf("unexpected canonical date: %s", got)
	}
}

func TestCanonicalDateFallsBackToRawText(t *testing.T) {
	t.Parallel()

	if got := CanonicalDate("  Sept 15  "); got != "Sept 15" {
		t.Fatalf("expected trimmed raw value, got %q", got)
	}
}
