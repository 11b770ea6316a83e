// Package lunar annotates Gregorian dates with Chinese lunar calendar labels.
package lunar

import (
	"errors"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// ErrUnavailable is returned when no lunar label can be produced.
var ErrUnavailable = errors.New("lunar label unavailable")

// FirstDay is the label of the first day of a lunar month.
const FirstDay = "初一"

// Label is the lunar day and month of a date, e.g. {"十五", "九月"}.
type Label struct {
	Day   string
	Month string
}

// Annotation returns the text shown in a day cell: the month label on the
// first day of a lunar month, the day label otherwise.
func (l Label) Annotation() string {
	if l.Day == FirstDay {
		return l.Month
	}
	return l.Day
}

// Provider converts a Gregorian date to a lunar label.
type Provider interface {
	Label(date time.Time) (Label, error)
}

// Chinese is a Provider backed by lunar-go.
type Chinese struct{}

// Label implements Provider. Panics inside the library are turned into
// ErrUnavailable.
func (Chinese) Label(date time.Time) (l Label, err error) {
	defer func() {
		if r := recover(); r != nil {
			l = Label{}
			err = fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()

	lunarDay := calendar.NewSolarFromYmd(date.Year(), int(date.Month()), date.Day()).GetLunar()
	l = Label{
		Day:   lunarDay.GetDayInChinese(),
		Month: lunarDay.GetMonthInChinese() + "月",
	}
	if l.Day == "" {
		return Label{}, ErrUnavailable
	}
	return l, nil
}

// None is a Provider that never annotates.
type None struct{}

// Label implements Provider.
func (None) Label(time.Time) (Label, error) {
	return Label{}, ErrUnavailable
}

// Func adapts a function to Provider.
type Func func(time.Time) (Label, error)

// Label implements Provider.
func (f Func) Label(date time.Time) (Label, error) {
	return f(date)
}
