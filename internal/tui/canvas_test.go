package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/scene"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

func textNode(id string, r geom.Rect, fill, text string) *scene.Node {
	n := scene.NewNode("test", id, r)
	n.Fill = fill
	n.Text = text
	n.TextAt = geom.Point{X: r.X, Y: r.Y}
	return n
}

func TestPaintStage(t *testing.T) {
	stage := scene.NewStage(6, 2)
	bg := textNode("bg", geom.Rect{W: 6, H: 2}, "#ff0000", "")
	label := textNode("label", geom.Rect{X: 1, W: 2, H: 1}, "", "hi")
	wide := textNode("wide", geom.Rect{X: 3, Y: 1, W: 2, H: 1}, "#0000ff", "世")
	hidden := textNode("hidden", geom.Rect{W: 6, H: 1}, "", "zzzzzz")
	hidden.Hidden = true
	stage.Add(scene.Static, bg, label)
	stage.Add(scene.Feature, wide, hidden)

	c := paintStage(stage, white, black)

	if c.w != 6 || c.h != 2 {
		t.Fatalf("canvas = %dx%d, want 6x2", c.w, c.h)
	}
	got := strings.Split(ansi.Strip(c.String()), "\n")
	want := []string{" hi   ", "   世 "}
	if len(got) != len(want) {
		t.Fatalf("lines = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	if hex := c.at(0, 0).bg.Hex(); hex != "#ff0000" {
		t.Errorf("fill = %s, want #ff0000", hex)
	}
	if g := c.at(3, 1); !g.wide || g.bg.Hex() != "#0000ff" {
		t.Errorf("wide glyph = %+v", *g)
	}
	if c.at(4, 1).ch != 0 {
		t.Errorf("expected continuation cell after a wide rune")
	}
}

func TestPaintClipsTextToRect(t *testing.T) {
	stage := scene.NewStage(8, 1)
	stage.Add(scene.Feature, textNode("bar", geom.Rect{W: 3, H: 1}, "", "abcdef"))

	got := ansi.Strip(paintStage(stage, white, black).String())
	if got != "abc     " {
		t.Errorf("got %q, want text cut at the node edge", got)
	}
}

func TestPaintOverwritesWideRune(t *testing.T) {
	stage := scene.NewStage(4, 1)
	stage.Add(scene.Static, textNode("under", geom.Rect{W: 4, H: 1}, "", "世界"))
	stage.Add(scene.Feature, textNode("over", geom.Rect{X: 1, W: 1, H: 1}, "", "x"))

	got := ansi.Strip(paintStage(stage, white, black).String())
	if got != " x界" {
		t.Errorf("got %q, want the split wide rune blanked", got)
	}
}

func TestCanvasStringUsesColors(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)

	stage := scene.NewStage(3, 1)
	stage.Add(scene.Static, textNode("cell", geom.Rect{W: 3, H: 1}, "#ff0000", "ab"))

	out := paintStage(stage, white, black).String()
	if !strings.Contains(out, "48;2;255;0;0") {
		t.Errorf("expected red background sequence in %q", out)
	}
	if lipgloss.Width(out) != 3 {
		t.Errorf("width = %d, want 3", lipgloss.Width(out))
	}
}
