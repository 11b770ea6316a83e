package calendar

import (
	"testing"

	"github.com/javiermolinar/taskcal/internal/geom"
)

func TestWeekRows(t *testing.T) {
	tests := []struct {
		year, month int
		want        int
	}{
		{2024, 10, 5}, // starts Tuesday, 31 days
		{2024, 9, 6},  // starts Sunday, 30 days
		{2021, 2, 4},  // starts Monday, 28 days
		{2025, 3, 6},  // starts Saturday, 31 days
	}
	for _, tt := range tests {
		got, err := WeekRows(tt.year, tt.month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("WeekRows(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestNewGrid_October2024(t *testing.T) {
	g, err := NewGrid(2024, 10, "2024-10-15", geom.Point{X: 20, Y: 70}, 100, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Rows != 5 || len(g.Cells) != 35 {
		t.Fatalf("rows=%d cells=%d, want 5 and 35", g.Rows, len(g.Cells))
	}
	if g.First() != "2024-09-30" || g.Last() != "2024-11-03" {
		t.Errorf("visible range = %s..%s", g.First(), g.Last())
	}

	lead, _ := g.Cell("2024-09-30")
	if lead.InMonth || lead.Col != 0 || lead.Row != 0 {
		t.Errorf("leading cell = %+v", lead)
	}

	first, _ := g.Cell("2024-10-01")
	if !first.InMonth || first.Col != 1 {
		t.Errorf("first of month = %+v", first)
	}
	if first.Rect != (geom.Rect{X: 120, Y: 70, W: 100, H: 120}) {
		t.Errorf("first of month rect = %+v", first.Rect)
	}

	today, _ := g.Cell("2024-10-15")
	if !today.Today {
		t.Error("today flag missing")
	}

	if _, ok := g.Cell("2024-11-04"); ok {
		t.Error("2024-11-04 should not be visible")
	}
}

func TestGrid_CellAt(t *testing.T) {
	g, _ := NewGrid(2024, 10, "", geom.Point{X: 20, Y: 70}, 100, 120)

	tests := []struct {
		p    geom.Point
		want string
		ok   bool
	}{
		{p: geom.Point{X: 25, Y: 75}, want: "2024-09-30", ok: true},
		{p: geom.Point{X: 350, Y: 200}, want: "2024-10-10", ok: true},
		{p: geom.Point{X: 719, Y: 669}, want: "2024-11-03", ok: true},
		{p: geom.Point{X: 10, Y: 75}},
		{p: geom.Point{X: 350, Y: 40}},
	}
	for _, tt := range tests {
		c, ok := g.CellAt(tt.p)
		if ok != tt.ok || c.Key != tt.want {
			t.Errorf("CellAt(%v) = %q ok=%v, want %q ok=%v", tt.p, c.Key, ok, tt.want, tt.ok)
		}
	}
}

func TestNewGrid_InvalidMonth(t *testing.T) {
	if _, err := NewGrid(2024, 13, "", geom.Point{}, 1, 1); err == nil {
		t.Error("expected error for month 13")
	}
}
