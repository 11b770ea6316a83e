// Package dateutil provides calendar-date arithmetic on YYYY-MM-DD keys.
//
// All arithmetic runs on UTC midnights so that day counts never drift across
// daylight-saving transitions: a key is a local calendar date, not an instant.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

// KeyLayout is the fixed-width layout of a date key.
const KeyLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateKey     = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
)

// ParseKey parses a date key. Only the exact fixed-width form is accepted,
// so lexicographic comparison of valid keys matches chronological order.
func ParseKey(key string) (time.Time, error) {
	if len(key) != len(KeyLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	t, err := time.ParseInLocation(KeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

// FormatKey returns the date key of t's calendar date in t's own location.
func FormatKey(t time.Time) string {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(KeyLayout)
}

// ValidKey reports whether key is a well-formed date key.
func ValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}

// AddDays returns the key n days after key. n may be negative.
func AddDays(key string, n int) (string, error) {
	t, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(KeyLayout), nil
}

const secondsPerDay = 24 * 60 * 60

// DayCount returns the signed number of days from a to b (b - a).
func DayCount(a, b string) (int, error) {
	ta, err := ParseKey(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseKey(b)
	if err != nil {
		return 0, err
	}
	return DaysBetween(ta, tb), nil
}

// SpanDays returns the inclusive number of days covered by [start, end],
// regardless of argument order.
func SpanDays(start, end string) (int, error) {
	n, err := DayCount(start, end)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = -n
	}
	return n + 1, nil
}

// DaysBetween returns the signed number of whole days from a to b. Both
// must be UTC midnights as returned by ParseKey. It does not go through
// time.Duration, which cannot hold spans much longer than 290 years.
func DaysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

// MonthShift moves (year, month) by n months with carry and borrow across
// year boundaries. month is 1-based and n may be any integer.
func MonthShift(year, month, n int) (int, int) {
	total := year*12 + (month - 1) + n
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m + 1
}

// FirstAndLastOfMonth returns the first and last day of the month and the
// number of days in it.
func FirstAndLastOfMonth(year, month int) (first, last time.Time, days int, err error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last, last.Day(), nil
}

// MonthKey formats year and month as "YYYY-MM".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// DayKey builds a date key from its parts without validating them.
func DayKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Weekday returns the weekday of a date key.
func Weekday(key string) (time.Weekday, error) {
	t, err := ParseKey(key)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// NextSunday returns the first Sunday on or after key.
func NextSunday(key string) (string, error) {
	wd, err := Weekday(key)
	if err != nil {
		return "", err
	}
	return AddDays(key, (7-int(wd))%7)
}

// MondayIndex returns the column of t in a Monday-first week (Monday=0, Sunday=6).
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseInput turns user input into a date key. It accepts:
//   - empty string or "today": the date of now
//   - an absolute key: "2025-01-15"
//   - natural language understood by go-naturaldate: "tomorrow", "next friday", "in 3 days"
func ParseInput(s string, now time.Time) (string, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	if input == "" || input == "today" {
		return FormatKey(now), nil
	}
	if ValidKey(input) {
		return input, nil
	}
	parsed, err := naturaldate.Parse(input, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return FormatKey(parsed), nil
}
