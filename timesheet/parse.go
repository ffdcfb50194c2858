package timesheet

import (
	"strconv"
	"strings"
)

// ParseDuration converts an H:MM or HH:MM duration string to decimal hours.
// Malformed or empty values resolve to 0.0 rather than failing the row.
func ParseDuration(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0.0
	}

	parts := strings.Split(cleaned, ":")
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0.0
	}

	minutes := 0
	if len(parts) > 1 {
		minutes, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0.0
		}
	}

	return float64(hours) + float64(minutes)/60.0
}
