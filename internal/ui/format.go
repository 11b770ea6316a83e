package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/task"
)

// dateColumn is the width of "Oct 07 - Oct 08".
const dateColumn = 15

// MonthTasks returns the tasks touching the given month, ordered by start
// date with longer spans first.
func MonthTasks(ranges []task.Range, year, month int) []task.Range {
	first := dateutil.DayKey(year, month, 1)
	_, last, _, err := dateutil.FirstAndLastOfMonth(year, month)
	if err != nil {
		return nil
	}
	lastKey := dateutil.FormatKey(last)

	var out []task.Range
	for _, r := range ranges {
		if task.IntervalsOverlap(r.StartTime, r.EndTime, first, lastKey) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].EndTime > out[j].EndTime
	})
	return out
}

// FormatSpan formats a day count as "1 day" or "N days".
func FormatSpan(days int) string {
	return plural(days, "day")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatDates formats a task's dates as "Oct 07" or "Oct 07 - Oct 08".
func FormatDates(r task.Range) string {
	start := shortDate(r.StartTime)
	if r.EndTime == r.StartTime {
		return start
	}
	return start + " - " + shortDate(r.EndTime)
}

func shortDate(key string) string {
	t, err := dateutil.ParseKey(key)
	if err != nil {
		return key
	}
	return t.Format("Jan 02")
}

// FormatTaskLine renders one task row, truncating the description so the
// row fits in width columns. A width of 0 disables truncation.
func FormatTaskLine(r task.Range, width int) string {
	days, err := dateutil.SpanDays(r.StartTime, r.EndTime)
	if err != nil {
		days = 1
	}
	span := FormatSpan(days)

	desc := r.Description
	if desc == "" {
		desc = "Untitled"
	}
	// "  " + dates + "  " + span + "  " + desc
	if width > 0 {
		avail := width - 2 - dateColumn - 2 - 8 - 2
		if avail < 8 {
			avail = 8
		}
		desc = runewidth.Truncate(desc, avail, "...")
	}

	dates := runewidth.FillRight(FormatDates(r), dateColumn)
	return fmt.Sprintf("  %s  %s  %s", formatDate(dates), formatMuted(runewidth.FillRight(span, 8)), desc)
}

// PrintMonthTasks writes the header and one line per task of the month.
func PrintMonthTasks(w io.Writer, title string, ranges []task.Range, width int) {
	fmt.Fprintf(w, "=== %s ===\n\n", formatHeader(title))
	if len(ranges) == 0 {
		fmt.Fprintln(w, formatMuted("  No tasks this month."))
		return
	}
	for _, r := range ranges {
		fmt.Fprintln(w, FormatTaskLine(r, width))
	}
	fmt.Fprintf(w, "\n%s\n", formatStats(plural(len(ranges), "task")))
}
