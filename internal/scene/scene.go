// Package scene is a retained-mode display list the calendar draws into.
// Painters (terminal, PNG) read it back in z-order.
package scene

import (
	"slices"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/taskcal/internal/geom"
)

// Layer selects one of the stage's display lists.
type Layer int

// Layers, back to front.
const (
	// Static holds the month grid.
	Static Layer = iota
	// Feature holds bars, chips, hover and drag feedback.
	Feature
	layerCount
)

// Node names used by the calendar.
const (
	NameTitle    = "title"
	NameWeekday  = "weekday"
	NameDateCell = "date-cell"
	NameToday    = "today"
	NameLunar    = "lunar"
	NameTaskBar  = "task-bar"
	NameChip     = "overflow-chip"
	NameHover    = "hover"
	NamePlus     = "plus"
	NameGhost    = "ghost"
)

// Node is a rectangle with an optional text label.
type Node struct {
	// ID is unique among nodes of the same name: a date key for cells, a
	// segment id for bars.
	ID   string
	Name string

	Rect    geom.Rect
	Fill    string
	Stroke  string
	Opacity float64
	Round   bool
	Hidden  bool

	Text      string
	TextAt    geom.Point
	TextColor string
	Bold      bool

	// Key is the date a node stands for.
	Key string
	// ParentID and Day are set on task bars.
	ParentID string
	Day      int
}

// NewNode returns a visible, opaque node.
func NewNode(name, id string, r geom.Rect) *Node {
	return &Node{Name: name, ID: id, Rect: r, Opacity: 1}
}

// Clone returns a copy of n.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// Renderer is what the calendar needs from a drawing surface.
type Renderer interface {
	Size() (w, h float64)
	Add(l Layer, nodes ...*Node)
	Remove(l Layer, n *Node) bool
	RemoveNamed(l Layer, name string) int
	Clear(l Layer)
	// Find returns visible nodes with the given name, front-most first.
	Find(l Layer, name string) []*Node
	// Nodes returns every node of a layer, back to front.
	Nodes(l Layer) []*Node
	MoveToTop(l Layer, n *Node)
	MoveToBottom(l Layer, n *Node)
	Pointer() geom.Point
	SetPointer(p geom.Point)
	// MeasureText returns the rendered width of s.
	MeasureText(s string) float64
}

// Stage is an in-memory Renderer.
type Stage struct {
	w, h      float64
	charWidth float64
	layers    [layerCount][]*Node
	pointer   geom.Point
}

// Option configures a Stage.
type Option func(*Stage)

// WithCharWidth sets the width of one text column. Wide characters take
// two columns.
func WithCharWidth(w float64) Option {
	return func(s *Stage) { s.charWidth = w }
}

// NewStage returns an empty stage of the given size.
func NewStage(w, h float64, opts ...Option) *Stage {
	s := &Stage{w: w, h: h, charWidth: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the stage size.
func (s *Stage) Size() (float64, float64) { return s.w, s.h }

// Add appends nodes on top of a layer.
func (s *Stage) Add(l Layer, nodes ...*Node) {
	s.layers[l] = append(s.layers[l], nodes...)
}

// Remove deletes n from a layer.
func (s *Stage) Remove(l Layer, n *Node) bool {
	i := slices.Index(s.layers[l], n)
	if i < 0 {
		return false
	}
	s.layers[l] = slices.Delete(s.layers[l], i, i+1)
	return true
}

// RemoveNamed deletes every node with the given name and returns the count.
func (s *Stage) RemoveNamed(l Layer, name string) int {
	before := len(s.layers[l])
	s.layers[l] = slices.DeleteFunc(s.layers[l], func(n *Node) bool { return n.Name == name })
	return before - len(s.layers[l])
}

// Clear empties a layer.
func (s *Stage) Clear(l Layer) {
	s.layers[l] = nil
}

// Find returns visible nodes named name, front-most first.
func (s *Stage) Find(l Layer, name string) []*Node {
	var out []*Node
	nodes := s.layers[l]
	for i := len(nodes) - 1; i >= 0; i-- {
		if n := nodes[i]; n.Name == name && !n.Hidden {
			out = append(out, n)
		}
	}
	return out
}

// Nodes returns a layer's nodes back to front.
func (s *Stage) Nodes(l Layer) []*Node {
	return slices.Clone(s.layers[l])
}

// MoveToTop moves n to the front of its layer.
func (s *Stage) MoveToTop(l Layer, n *Node) {
	if s.Remove(l, n) {
		s.layers[l] = append(s.layers[l], n)
	}
}

// MoveToBottom moves n to the back of its layer.
func (s *Stage) MoveToBottom(l Layer, n *Node) {
	if s.Remove(l, n) {
		s.layers[l] = slices.Insert(s.layers[l], 0, n)
	}
}

// Pointer returns the last known pointer position.
func (s *Stage) Pointer() geom.Point { return s.pointer }

// SetPointer records the pointer position.
func (s *Stage) SetPointer(p geom.Point) { s.pointer = p }

// MeasureText returns the display width of s in stage units.
func (s *Stage) MeasureText(text string) float64 {
	return float64(ansi.StringWidth(text)) * s.charWidth
}

// Hit returns the front-most visible node named name containing p.
func Hit(r Renderer, l Layer, name string, p geom.Point) (geom.Hit[*Node], bool) {
	return geom.Find(r.Find(l, name), bounds, p)
}

func bounds(n *Node) geom.Rect { return n.Rect }
