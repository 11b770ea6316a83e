package taskfile

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/taskcal/internal/dateutil"
	"github.com/javiermolinar/taskcal/internal/task"
)

// ErrEventDates is returned for a VEVENT without a usable DTSTART.
var ErrEventDates = errors.New("event has no usable start date")

// ImportICS converts every VEVENT into a logical task covering the days
// the event touches. All-day DTEND is exclusive. Events that cannot be
// converted are skipped and reported in skipped; err is only set when
// the calendar itself cannot be parsed.
func ImportICS(r io.Reader) (ranges []task.Range, skipped []error, err error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}

	for _, ev := range cal.Events() {
		t, err := fromEvent(ev)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		ranges = append(ranges, t)
	}
	return ranges, skipped, nil
}

func fromEvent(ev *ical.VEvent) (task.Range, error) {
	id := propValue(ev, ical.ComponentPropertyUniqueId)
	if id == "" {
		id = task.NewID()
	}

	var start, end string
	if isAllDay(ev) {
		s, err := ev.GetAllDayStartAt()
		if err != nil {
			return task.Range{}, fmt.Errorf("event %q: %w", id, ErrEventDates)
		}
		start = dateutil.FormatKey(s)
		end = start
		if e, err := ev.GetAllDayEndAt(); err == nil && e.After(s) {
			end = dateutil.FormatKey(e.AddDate(0, 0, -1))
		}
	} else {
		s, err := ev.GetStartAt()
		if err != nil {
			return task.Range{}, fmt.Errorf("event %q: %w", id, ErrEventDates)
		}
		start = dateutil.FormatKey(s)
		end = start
		if e, err := ev.GetEndAt(); err == nil && e.After(s) {
			// An event ending exactly at midnight does not touch that day.
			end = dateutil.FormatKey(e.Add(-time.Nanosecond).In(s.Location()))
		}
	}

	r := task.Range{
		ID:          id,
		StartTime:   start,
		EndTime:     end,
		Description: propValue(ev, ical.ComponentPropertySummary),
		Fill:        propValue(ev, "COLOR"),
	}
	if err := r.Validate(); err != nil {
		return task.Range{}, fmt.Errorf("event %q: %w", id, err)
	}
	return r, nil
}

// isAllDay reports whether DTSTART is a DATE rather than a DATE-TIME.
func isAllDay(ev *ical.VEvent) bool {
	p := ev.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func propValue(ev *ical.VEvent, name ical.ComponentProperty) string {
	if p := ev.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}
