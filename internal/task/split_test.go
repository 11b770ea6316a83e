package task

import (
	"fmt"
	"testing"
	"time"

	"github.com/javiermolinar/taskcal/internal/dateutil"
)

// seqIDs returns a deterministic id generator: s1, s2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}
}

func TestSplit_ScenarioA(t *testing.T) {
	parent := Range{ID: "p", StartTime: "2024-10-01", EndTime: "2024-10-20", Fill: "blue", Description: "Sprint"}

	segs, err := Splitter{NewID: seqIDs()}.Split(parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][2]string{
		{"2024-10-01", "2024-10-06"},
		{"2024-10-07", "2024-10-13"},
		{"2024-10-14", "2024-10-20"},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i, w := range want {
		s := segs[i]
		if s.StartTime != w[0] || s.EndTime != w[1] {
			t.Errorf("segment %d = [%s..%s], want [%s..%s]", i, s.StartTime, s.EndTime, w[0], w[1])
		}
		if s.Day != 20 {
			t.Errorf("segment %d day = %d, want 20", i, s.Day)
		}
		if s.ParentID != "p" || s.Fill != "blue" || s.Description != "Sprint" {
			t.Errorf("segment %d did not inherit parent fields: %+v", i, s)
		}
		if s.ID != fmt.Sprintf("s%d", i+1) {
			t.Errorf("segment %d id = %q", i, s.ID)
		}
	}
	if !segs[0].StartSign || segs[1].StartSign || segs[2].StartSign {
		t.Error("startSign should only be set on the first segment")
	}
	if segs[0].EndSign || segs[1].EndSign || !segs[2].EndSign {
		t.Error("endSign should only be set on the last segment")
	}
}

func TestSplit_SundayIsSingleDaySegment(t *testing.T) {
	// 2024-10-06 is a Sunday.
	segs, err := Splitter{NewID: seqIDs()}.Split(Range{ID: "p", StartTime: "2024-10-06", EndTime: "2024-10-08"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].StartTime != "2024-10-06" || segs[0].EndTime != "2024-10-06" {
		t.Errorf("first segment = [%s..%s], want the Sunday alone", segs[0].StartTime, segs[0].EndTime)
	}
	if segs[1].StartTime != "2024-10-07" || segs[1].EndTime != "2024-10-08" {
		t.Errorf("second segment = [%s..%s]", segs[1].StartTime, segs[1].EndTime)
	}
}

func TestSplit_SingleDay(t *testing.T) {
	segs, err := Split(Range{ID: "p", StartTime: "2024-10-09", EndTime: "2024-10-09"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	s := segs[0]
	if !s.StartSign || !s.EndSign || s.Day != 1 {
		t.Errorf("single-day segment = %+v", s)
	}
	if s.ID == "" || s.ID == "p" {
		t.Errorf("segment should get a fresh id, got %q", s.ID)
	}
}

func TestSplit_CenturiesLong(t *testing.T) {
	segs, err := Split(Range{ID: "p", StartTime: "1700-01-01", EndTime: "2024-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, last := segs[0], segs[len(segs)-1]
	if first.Day != 118339 || last.Day != 118339 {
		t.Errorf("day = %d/%d, want 118339", first.Day, last.Day)
	}
	if first.StartTime != "1700-01-01" || last.EndTime != "2024-01-01" {
		t.Errorf("segments cover %s..%s", first.StartTime, last.EndTime)
	}
}

func TestSplit_InvalidRange(t *testing.T) {
	if _, err := Split(Range{ID: "p", StartTime: "2024-10-09", EndTime: "2024-10-01"}); err == nil {
		t.Error("expected error for reversed range")
	}
}

// TestSplit_Properties checks reconstruction, sign and day invariants over
// many start/length combinations, including month and year rollovers.
func TestSplit_Properties(t *testing.T) {
	starts := []string{"2024-10-01", "2024-10-06", "2024-10-07", "2024-12-29", "2024-02-26", "2025-03-30"}
	lengths := []int{1, 2, 6, 7, 8, 13, 14, 15, 31, 45, 100}

	for _, start := range starts {
		for _, length := range lengths {
			end, _ := dateutil.AddDays(start, length-1)
			name := fmt.Sprintf("%s+%d", start, length)
			t.Run(name, func(t *testing.T) {
				segs, err := Split(Range{ID: "p", StartTime: start, EndTime: end})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				checkSegments(t, segs, start, end, length)
			})
		}
	}
}

func checkSegments(t *testing.T, segs []Range, start, end string, length int) {
	t.Helper()

	if segs[0].StartTime != start {
		t.Errorf("first segment starts %s, want %s", segs[0].StartTime, start)
	}
	if segs[len(segs)-1].EndTime != end {
		t.Errorf("last segment ends %s, want %s", segs[len(segs)-1].EndTime, end)
	}

	starts, ends := 0, 0
	seen := map[string]bool{}
	for i, s := range segs {
		if s.Day != length {
			t.Errorf("segment %d day = %d, want %d", i, s.Day, length)
		}
		if s.StartSign {
			starts++
		}
		if s.EndSign {
			ends++
		}
		if seen[s.ID] {
			t.Errorf("duplicate segment id %q", s.ID)
		}
		seen[s.ID] = true

		// Each segment stays inside one Monday..Sunday week.
		wd, _ := dateutil.Weekday(s.StartTime)
		sunday, _ := dateutil.NextSunday(s.StartTime)
		if s.EndTime > sunday {
			t.Errorf("segment %d [%s..%s] crosses Sunday %s (start weekday %v)", i, s.StartTime, s.EndTime, sunday, wd)
		}
		if i > 0 {
			next, _ := dateutil.AddDays(segs[i-1].EndTime, 1)
			if s.StartTime != next {
				t.Errorf("gap or overlap between segment %d and %d: %s then %s", i-1, i, segs[i-1].EndTime, s.StartTime)
			}
			if prevWd, _ := dateutil.Weekday(segs[i-1].EndTime); prevWd != time.Sunday {
				t.Errorf("segment %d ends on %v, want Sunday", i-1, prevWd)
			}
		}
	}
	if starts != 1 || ends != 1 {
		t.Errorf("startSign count = %d, endSign count = %d, want 1 and 1", starts, ends)
	}
}

func TestSplitAll_SkipsInvalid(t *testing.T) {
	ranges := []Range{
		{ID: "a", StartTime: "2024-10-01", EndTime: "2024-10-02"},
		{ID: "bad", StartTime: "2024-10-xx", EndTime: "2024-10-02"},
		{ID: "b", StartTime: "2024-10-07", EndTime: "2024-10-07"},
	}
	segs, errs := Splitter{NewID: seqIDs()}.SplitAll(ranges)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].ParentID != "a" || segs[1].ParentID != "b" {
		t.Errorf("unexpected parents %q %q", segs[0].ParentID, segs[1].ParentID)
	}
}
