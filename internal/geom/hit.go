package geom

// Hit is the result of a successful hit test.
type Hit[S any] struct {
	Shape S
	Rect  Rect
	Point Point
}

// Find returns the first shape whose bounds contain p. Shapes are tested in
// slice order, so callers pass front-most candidates first. No match is the
// common case and is reported with ok=false.
func Find[S any](shapes []S, bounds func(S) Rect, p Point) (hit Hit[S], ok bool) {
	for _, s := range shapes {
		r := bounds(s)
		if r.Contains(p) {
			return Hit[S]{Shape: s, Rect: r, Point: p}, true
		}
	}
	return hit, false
}
