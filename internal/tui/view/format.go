// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"

	"github.com/javiermolinar/taskcal/internal/dateutil"
)

// FormatSpan formats an inclusive day count.
func FormatSpan(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatDateLabel formats a date key for display. Invalid keys are
// returned unchanged.
func FormatDateLabel(key string) string {
	t, err := dateutil.ParseKey(key)
	if err != nil {
		return key
	}
	return t.Format("Mon Jan 2, 2006")
}

// FormatDates formats an inclusive date range.
func FormatDates(start, end string) string {
	if start == end {
		return FormatDateLabel(start)
	}
	return FormatDateLabel(start) + " - " + FormatDateLabel(end)
}
