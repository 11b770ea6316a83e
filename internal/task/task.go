// Package task defines the date-range types the calendar lays out.
package task

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/javiermolinar/taskcal/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyID        = errors.New("task id cannot be empty")
	ErrEndBeforeStart = errors.New("end date must be on or after start date")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrDuplicateID  = errors.New("duplicate task id")
	ErrNotLogical   = errors.New("week segments cannot be stored as tasks")
)

// DefaultFill is used for ranges without a fill color.
const DefaultFill = "#f3d4d4"

// Range is a date range drawn as a bar.
//
// A Range without ParentID is a logical task: the user-visible identity.
// A Range with ParentID is a week-segment produced by Split; Day, StartSign
// and EndSign are only meaningful on segments.
type Range struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	ParentID    string `json:"parentId,omitempty" yaml:"parent_id,omitempty" toml:"parent_id,omitempty"`
	StartTime   string `json:"startTime" yaml:"start" toml:"start"`
	EndTime     string `json:"endTime" yaml:"end" toml:"end"`
	Fill        string `json:"fill,omitempty" yaml:"fill,omitempty" toml:"fill,omitempty"`
	Description string `json:"description" yaml:"description" toml:"description"`

	// Day is the total inclusive span of the parent task, not of the segment.
	Day int `json:"day,omitempty" yaml:"-" toml:"-"`
	// StartSign marks the segment holding the parent's first day.
	StartSign bool `json:"startSign,omitempty" yaml:"-" toml:"-"`
	// EndSign marks the segment holding the parent's last day.
	EndSign bool `json:"endSign,omitempty" yaml:"-" toml:"-"`
}

// New creates a logical task with validation. An empty id gets a fresh UUID.
func New(id, start, end, fill, description string) (*Range, error) {
	if id == "" {
		id = NewID()
	}
	r := &Range{
		ID:          id,
		StartTime:   start,
		EndTime:     end,
		Fill:        fill,
		Description: description,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewID returns a fresh unique identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate checks the identity and date invariants of a range.
func (r *Range) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if !dateutil.ValidKey(r.StartTime) {
		return fmt.Errorf("start: %w", dateutil.ErrInvalidDateKey)
	}
	if !dateutil.ValidKey(r.EndTime) {
		return fmt.Errorf("end: %w", dateutil.ErrInvalidDateKey)
	}
	if r.EndTime < r.StartTime {
		return ErrEndBeforeStart
	}
	return nil
}

// IsSegment returns true if the range is a week-segment of another range.
func (r *Range) IsSegment() bool {
	return r.ParentID != ""
}

// LogicalID returns the id of the user-visible task this range belongs to.
func (r *Range) LogicalID() string {
	if r.ParentID != "" {
		return r.ParentID
	}
	return r.ID
}

// Span returns the inclusive number of days the range covers.
func (r *Range) Span() (int, error) {
	return dateutil.SpanDays(r.StartTime, r.EndTime)
}

// Contains returns true if the date key falls inside [StartTime, EndTime].
func (r *Range) Contains(key string) bool {
	return key >= r.StartTime && key <= r.EndTime
}

// Overlaps returns true if the two ranges share at least one day.
// Touching ranges (one ends the day the other starts) overlap.
func (r *Range) Overlaps(other *Range) bool {
	if other == nil {
		return false
	}
	return IntervalsOverlap(r.StartTime, r.EndTime, other.StartTime, other.EndTime)
}

// IntervalsOverlap is the inclusive-both-ends overlap test on date keys.
func IntervalsOverlap(start, end, otherStart, otherEnd string) bool {
	return start <= otherEnd && end >= otherStart
}

// FillOrDefault returns the fill color, falling back to DefaultFill.
func (r *Range) FillOrDefault() string {
	if r.Fill == "" {
		return DefaultFill
	}
	return r.Fill
}
