package analytics

import (
	"fmt"
	"time"
)

// Placeholder stands in for values that cannot be computed (no records).
const Placeholder = "-"

// FormatDuration renders d as "8h 12m". Durations under a minute render as
// seconds ("45s"); negative durations are rendered by magnitude.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60

	if hours == 0 && minutes == 0 {
		return fmt.Sprintf("%ds", total%60)
	}
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatClock renders t on a 12-hour clock, e.g. "11:30 PM" or "12:05 AM".
func FormatClock(t TimeOfDay) string {
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}

	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, suffix)
}

// FormatTimeOfDay renders an optional time of day, or Placeholder.
func FormatTimeOfDay(t *TimeOfDay) string {
	if t == nil {
		return Placeholder
	}
	return FormatClock(*t)
}

// QualityLabel renders a score with its band label, e.g. "good (78)".
func QualityLabel(score int) string {
	return fmt.Sprintf("%s (%d)", BandFor(score).Label, score)
}
