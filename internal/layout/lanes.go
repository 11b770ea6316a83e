// Package layout assigns week-segments to display lanes and computes bar
// geometry inside day cells.
package layout

import (
	"cmp"
	"slices"

	"github.com/javiermolinar/taskcal/internal/task"
)

// Placement is a segment that found a lane.
type Placement struct {
	Segment task.Range
	Lane    int
}

// OverflowGroup holds the segments starting on Key that found no lane.
type OverflowGroup struct {
	Key      string
	Segments []task.Range
}

// Result is the output of one layout pass.
type Result struct {
	Placed []Placement
	// Overflow is ordered by Key.
	Overflow []OverflowGroup
}

// OverflowFor returns the overflow group for a start date.
func (r Result) OverflowFor(key string) (OverflowGroup, bool) {
	i, found := slices.BinarySearchFunc(r.Overflow, key, func(g OverflowGroup, k string) int {
		return cmp.Compare(g.Key, k)
	})
	if !found {
		return OverflowGroup{}, false
	}
	return r.Overflow[i], true
}

// Hidden returns the number of segments routed to overflow.
func (r Result) Hidden() int {
	n := 0
	for _, g := range r.Overflow {
		n += len(g.Segments)
	}
	return n
}

// SortSegments orders segments by start date ascending and, for equal
// starts, longer spans first. The sort is stable so equal segments keep
// their input order.
func SortSegments(segs []task.Range) {
	slices.SortStableFunc(segs, func(a, b task.Range) int {
		if c := cmp.Compare(a.StartTime, b.StartTime); c != 0 {
			return c
		}
		// Same start: the later end is the longer span.
		return cmp.Compare(b.EndTime, a.EndTime)
	})
}

type interval struct {
	start, end string
}

// Allocator is a greedy first-fit lane assigner for a single layout pass.
type Allocator struct {
	lanes    [][]interval
	overflow map[string][]task.Range
}

// NewAllocator returns an allocator with k empty lanes.
func NewAllocator(k int) *Allocator {
	if k < 0 {
		k = 0
	}
	return &Allocator{
		lanes:    make([][]interval, k),
		overflow: make(map[string][]task.Range),
	}
}

// Place puts seg in the first lane none of whose recorded intervals overlap
// it. When every lane rejects it, seg is appended to the overflow group for
// its start date, lane is -1 and placed is false.
func (a *Allocator) Place(seg task.Range) (lane int, placed bool) {
	for i, occupied := range a.lanes {
		if fits(occupied, seg) {
			a.lanes[i] = append(occupied, interval{seg.StartTime, seg.EndTime})
			return i, true
		}
	}
	a.overflow[seg.StartTime] = append(a.overflow[seg.StartTime], seg)
	return -1, false
}

func fits(occupied []interval, seg task.Range) bool {
	for _, iv := range occupied {
		if task.IntervalsOverlap(seg.StartTime, seg.EndTime, iv.start, iv.end) {
			return false
		}
	}
	return true
}

// Overflow returns the overflow groups ordered by start date.
func (a *Allocator) Overflow() []OverflowGroup {
	keys := make([]string, 0, len(a.overflow))
	for k := range a.overflow {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	groups := make([]OverflowGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, OverflowGroup{Key: k, Segments: slices.Clone(a.overflow[k])})
	}
	return groups
}

// Allocate sorts a copy of segs and assigns every segment to one of k lanes
// or to overflow. segs is not modified.
func Allocate(segs []task.Range, k int) Result {
	sorted := slices.Clone(segs)
	SortSegments(sorted)

	a := NewAllocator(k)
	var res Result
	for _, seg := range sorted {
		if lane, ok := a.Place(seg); ok {
			res.Placed = append(res.Placed, Placement{Segment: seg, Lane: lane})
		}
	}
	res.Overflow = a.Overflow()
	return res
}
