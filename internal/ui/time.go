package ui

import (
	"fmt"
	"time"
)

// agedOut is how old a timestamp can be before FormatTimeAgo shows the date.
const agedOut = 30 * 24 * time.Hour

// FormatTimeAgo returns a compact age like "2m ago". Ages under a minute
// read "just now", ages past thirty days show the date, and an unknown time
// is "-".
func FormatTimeAgo(then time.Time, now time.Time) string {
	if then.IsZero() {
		return "-"
	}
	age := now.Sub(then)
	switch {
	case age < time.Minute:
		return "just now"
	case age >= agedOut:
		return then.In(now.Location()).Format("2006-01-02")
	default:
		return FormatDurationShort(age) + " ago"
	}
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}
	seconds := int64(duration / time.Second)
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 24*60*60:
		return fmt.Sprintf("%dh", seconds/(60*60))
	default:
		return fmt.Sprintf("%dd", seconds/(24*60*60))
	}
}
