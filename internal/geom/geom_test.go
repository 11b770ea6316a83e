package geom

import "testing"

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{name: "inside", p: Point{X: 25, Y: 30}, want: true},
		{name: "top-left corner", p: Point{X: 10, Y: 20}, want: true},
		{name: "bottom-right corner", p: Point{X: 40, Y: 60}, want: true},
		{name: "left of", p: Point{X: 9.9, Y: 30}, want: false},
		{name: "below", p: Point{X: 25, Y: 60.1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

type shape struct {
	name string
	r    Rect
}

func shapeBounds(s shape) Rect { return s.r }

func TestFind(t *testing.T) {
	shapes := []shape{
		{name: "front", r: Rect{X: 0, Y: 0, W: 10, H: 10}},
		{name: "back", r: Rect{X: 0, Y: 0, W: 50, H: 50}},
	}

	t.Run("first match wins", func(t *testing.T) {
		hit, ok := Find(shapes, shapeBounds, Point{X: 5, Y: 5})
		if !ok {
			t.Fatal("expected a hit")
		}
		if hit.Shape.name != "front" {
			t.Errorf("hit %q, want front", hit.Shape.name)
		}
		if hit.Rect != shapes[0].r || hit.Point != (Point{X: 5, Y: 5}) {
			t.Errorf("unexpected hit %+v", hit)
		}
	})

	t.Run("falls through to later shapes", func(t *testing.T) {
		hit, ok := Find(shapes, shapeBounds, Point{X: 30, Y: 30})
		if !ok || hit.Shape.name != "back" {
			t.Errorf("got %+v ok=%v, want back", hit, ok)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, ok := Find(shapes, shapeBounds, Point{X: 100, Y: 100}); ok {
			t.Error("expected no hit")
		}
	})

	t.Run("empty set", func(t *testing.T) {
		if _, ok := Find(nil, shapeBounds, Point{}); ok {
			t.Error("expected no hit")
		}
	})
}

func TestPoint_Arithmetic(t *testing.T) {
	p := Point{X: 5, Y: 7}
	q := Point{X: 2, Y: 3}
	if got := p.Sub(q); got != (Point{X: 3, Y: 4}) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Add(q); got != (Point{X: 7, Y: 10}) {
		t.Errorf("Add = %v", got)
	}
	if !(Point{}).IsZero() || p.IsZero() {
		t.Error("IsZero mismatch")
	}
}
