package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Activity dates arrive in whatever format the export tool was configured
// with, so every layout seen in real files is tried in order.
var activityDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"01/02/06",
	"02.01.2006",
}

func ParseActivityDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty activity date")
	}

	for _, layout := range activityDateLayouts {
		if parsed, err := time.ParseInLocation(layout, cleaned, time.Local); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported activity date format: %q", raw)
}

// CanonicalDate reduces an activity date to ISO form so content-derived keys
// stay identical across re-reads of differently formatted exports. Unparseable
// values fall back to the trimmed raw text.
func CanonicalDate(raw string) string {
	parsed, err := ParseActivityDate(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return parsed.Format("2006-01-02")
}
