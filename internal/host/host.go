// Package host resolves the container the calendar is mounted in.
package host

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/javiermolinar/taskcal/internal/geom"
)

// Resolution errors.
var (
	ErrEmptySelector      = errors.New("container selector cannot be empty")
	ErrContainerNotFound  = errors.New("container not found")
	ErrContainerZeroSized = errors.New("container has no area")
)

// SelectorKind says how a selector matches elements.
type SelectorKind int

// Selector kinds.
const (
	ByID SelectorKind = iota
	ByClass
)

// Selector is a parsed container reference.
type Selector struct {
	Kind SelectorKind
	Name string
}

func (s Selector) String() string {
	if s.Kind == ByClass {
		return "." + s.Name
	}
	return "#" + s.Name
}

// ParseSelector parses ".class", "#id" or a bare id.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "", s == ".", s == "#":
		return Selector{}, ErrEmptySelector
	case s[0] == '.':
		return Selector{Kind: ByClass, Name: s[1:]}, nil
	case s[0] == '#':
		return Selector{Kind: ByID, Name: s[1:]}, nil
	default:
		return Selector{Kind: ByID, Name: s}, nil
	}
}

// Element is a resolved container.
type Element interface {
	// Box returns the element's bounding box.
	Box() (geom.Rect, error)
}

// Host resolves selectors to elements.
type Host interface {
	Resolve(sel Selector) (Element, error)
}

// Registry is a Host backed by registered elements. The first element
// registered under a class wins, like getElementsByClassName()[0].
type Registry struct {
	mu      sync.RWMutex
	ids     map[string]Element
	classes map[string][]Element
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ids:     make(map[string]Element),
		classes: make(map[string][]Element),
	}
}

// Register adds el under an id and any number of classes.
func (r *Registry) Register(id string, el Element, classes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != "" {
		r.ids[id] = el
	}
	for _, c := range classes {
		r.classes[c] = append(r.classes[c], el)
	}
}

// Resolve implements Host.
func (r *Registry) Resolve(sel Selector) (Element, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if sel.Kind == ByClass {
		if els := r.classes[sel.Name]; len(els) > 0 {
			return els[0], nil
		}
	} else if el, ok := r.ids[sel.Name]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrContainerNotFound, sel)
}

// ContainerBox parses selector, resolves it and reads its box once.
func ContainerBox(h Host, selector string) (geom.Rect, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return geom.Rect{}, err
	}
	el, err := h.Resolve(sel)
	if err != nil {
		return geom.Rect{}, err
	}
	box, err := el.Box()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("reading %s box: %w", sel, err)
	}
	if box.Empty() {
		return geom.Rect{}, fmt.Errorf("%w: %s", ErrContainerZeroSized, sel)
	}
	return box, nil
}

// Fixed is an element with a constant box.
type Fixed geom.Rect

// Box implements Element.
func (f Fixed) Box() (geom.Rect, error) { return geom.Rect(f), nil }

// Terminal is the terminal window, measured in character cells.
type Terminal struct {
	FD int
}

// Box implements Element.
func (t Terminal) Box() (geom.Rect, error) {
	w, h, err := term.GetSize(t.FD)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("getting terminal size: %w", err)
	}
	return geom.Rect{W: float64(w), H: float64(h)}, nil
}

// TerminalID and TerminalClass are the selectors the terminal registers under.
const (
	TerminalID    = "terminal"
	TerminalClass = "terminal"
)

// NewTerminalHost returns a registry holding the terminal attached to fd.
func NewTerminalHost(fd int) *Registry {
	r := NewRegistry()
	r.Register(TerminalID, Terminal{FD: fd}, TerminalClass)
	return r
}
