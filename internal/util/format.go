package util

import (
	"fmt"
	"strings"
	"time"
)

// FormatDateISO formats t as an ISO date (2006-01-02), or "-" for the zero time.
func FormatDateISO(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// ParseTimeRFC3339 parses an RFC3339 timestamp string to time.Time.
// Returns zero time if parsing fails.
func ParseTimeRFC3339(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// FormatDistance formats a delta-E value with two decimals.
func FormatDistance(d float64) string {
	return fmt.Sprintf("%.2f", d)
}

// FormatDuration rounds d to milliseconds for display.
func FormatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

// FormatHSV formats hue, saturation and value as "h°, s%, v%".
func FormatHSV(h, s, v int) string {
	return fmt.Sprintf("%d°, %d%%, %d%%", h, s, v)
}

// SplitVariables splits a comma-separated variable list, trimming blanks.
func SplitVariables(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
