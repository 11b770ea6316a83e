package layout

import (
	"testing"

	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/task"
)

func TestBarRect(t *testing.T) {
	cfg := DefaultConfig()
	cell := geom.Rect{X: 100, Y: 200, W: 50, H: 120}

	tests := []struct {
		name       string
		startSign  bool
		endSign    bool
		lane       int
		wantX      float64
		wantWidth  float64
		wantOffset float64
	}{
		{name: "mid-task", wantX: 100, wantWidth: 150, wantOffset: 35},
		{name: "start cap", startSign: true, lane: 1, wantX: 110, wantWidth: 140, wantOffset: 60},
		{name: "end cap", endSign: true, lane: 2, wantX: 100, wantWidth: 140, wantOffset: 85},
		{name: "both caps", startSign: true, endSign: true, wantX: 110, wantWidth: 130, wantOffset: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := task.Range{ID: "s", ParentID: "p", StartTime: "2024-10-07", EndTime: "2024-10-09", StartSign: tt.startSign, EndSign: tt.endSign}
			got, err := cfg.BarRect(cell, Placement{Segment: s, Lane: tt.lane})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := geom.Rect{X: tt.wantX, Y: 200 + tt.wantOffset, W: tt.wantWidth, H: 20}
			if got != want {
				t.Errorf("BarRect = %+v, want %+v", got, want)
			}
		})
	}
}

func TestBarRect_InvalidSegment(t *testing.T) {
	s := task.Range{ID: "s", StartTime: "bad", EndTime: "2024-10-09"}
	if _, err := DefaultConfig().BarRect(geom.Rect{}, Placement{Segment: s}); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestChipRect(t *testing.T) {
	got := DefaultConfig().ChipRect(geom.Rect{X: 20, Y: 70, W: 100, H: 128}, 40)
	want := geom.Rect{X: 30, Y: 176, W: 50, H: 18}
	if got != want {
		t.Errorf("ChipRect = %+v, want %+v", got, want)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg.MaxVisibleLanes = 0
	if err := cfg.Validate(); err != ErrNoLanes {
		t.Errorf("got %v, want %v", err, ErrNoLanes)
	}
}

func TestLabels(t *testing.T) {
	if Label(task.Range{}) != "Untitled" {
		t.Error("empty description should render as Untitled")
	}
	if Label(task.Range{Description: "Review"}) != "Review" {
		t.Error("description should be used as label")
	}
	if ChipLabel(4) != "+4 more" {
		t.Errorf("ChipLabel(4) = %q", ChipLabel(4))
	}
}
