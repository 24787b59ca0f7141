package tui

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// formatAgo renders a relative timestamp for history displays.
func formatAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatDay renders the calendar-day header for slot listings.
func formatDay(t time.Time) string {
	return t.Format("Monday, 2 Jan 2006")
}

// formatClock renders the time-of-day of a slot.
func formatClock(t time.Time) string {
	return t.Format("15:04")
}

// formatDate renders a plain date for treatment rows.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
