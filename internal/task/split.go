package task

import (
	"fmt"
	"time"

	"github.com/javiermolinar/taskcal/internal/dateutil"
)

// Splitter cuts logical tasks into Sunday-terminated week-segments.
type Splitter struct {
	// NewID generates segment ids. Defaults to NewID.
	NewID func() string
}

// Split cuts r into week-segments using fresh UUIDs for segment ids.
func Split(r Range) ([]Range, error) {
	return Splitter{}.Split(r)
}

// Split cuts r into one segment per calendar week. A week ends on Sunday,
// so a Sunday is always the last day of a segment. Every segment carries
// the parent's total span in Day, and the segments concatenate back to
// exactly [r.StartTime, r.EndTime].
func (s Splitter) Split(r Range) ([]Range, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("splitting %q: %w", r.ID, err)
	}
	newID := s.NewID
	if newID == nil {
		newID = NewID
	}

	start, _ := dateutil.ParseKey(r.StartTime)
	end, _ := dateutil.ParseKey(r.EndTime)
	total := dateutil.DaysBetween(start, end) + 1

	segments := make([]Range, 0, total/7+2)
	for cur := start; !cur.After(end); {
		segEnd := cur
		if cur.Weekday() != time.Sunday {
			segEnd = cur.AddDate(0, 0, 7-int(cur.Weekday()))
			if segEnd.After(end) {
				segEnd = end
			}
		}

		segments = append(segments, Range{
			ID:          newID(),
			ParentID:    r.ID,
			StartTime:   cur.Format(dateutil.KeyLayout),
			EndTime:     segEnd.Format(dateutil.KeyLayout),
			Fill:        r.Fill,
			Description: r.Description,
			Day:         total,
			StartSign:   cur.Equal(start),
			EndSign:     segEnd.Equal(end),
		})

		cur = segEnd.AddDate(0, 0, 1)
	}
	return segments, nil
}

// SplitAll splits every range in order. A range that fails validation is
// skipped and reported in errs; the remaining ranges are still split.
func (s Splitter) SplitAll(ranges []Range) (segments []Range, errs []error) {
	for _, r := range ranges {
		segs, err := s.Split(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		segments = append(segments, segs...)
	}
	return segments, errs
}
