package integration

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/taskcal/internal/calendar"
	"github.com/javiermolinar/taskcal/internal/event"
	"github.com/javiermolinar/taskcal/internal/export"
	"github.com/javiermolinar/taskcal/internal/geom"
	"github.com/javiermolinar/taskcal/internal/scene"
	"github.com/javiermolinar/taskcal/internal/task"
	"github.com/javiermolinar/taskcal/internal/taskfile"
)

func fixedNow() time.Time {
	return time.Date(2024, 10, 15, 9, 30, 0, 0, time.UTC)
}

// openTasks writes tasks to a fresh task file with the given extension.
func openTasks(t *testing.T, ext string, tasks ...task.Range) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks"+ext)
	if err := taskfile.Save(path, tasks); err != nil {
		t.Fatalf("failed to save tasks: %v", err)
	}
	return path
}

// openCalendar loads a task file into an October 2024 calendar.
func openCalendar(t *testing.T, path string) *calendar.Controller {
	t.Helper()
	c, err := calendar.New(calendar.Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("failed to create calendar: %v", err)
	}
	tasks, err := taskfile.Load(path)
	if err != nil {
		t.Fatalf("failed to load tasks: %v", err)
	}
	if err := c.SetTasks(tasks); err != nil {
		t.Fatalf("failed to set tasks: %v", err)
	}
	return c
}

// createRange is a helper to build a validated task.
func createRange(t *testing.T, id, start, end, desc string) task.Range {
	t.Helper()
	r, err := task.New(id, start, end, "", desc)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return *r
}

func bars(c *calendar.Controller, parent string) []*scene.Node {
	var out []*scene.Node
	for _, n := range c.Renderer().Find(scene.Feature, scene.NameTaskBar) {
		if n.ParentID == parent {
			out = append(out, n)
		}
	}
	return out
}

func cellCenter(t *testing.T, c *calendar.Controller, key string) geom.Point {
	t.Helper()
	cell, ok := c.Grid().Cell(key)
	if !ok {
		t.Fatalf("cell %s not visible", key)
	}
	return geom.Point{X: cell.Rect.X + cell.Rect.W/2, Y: cell.Rect.Y + cell.Rect.H/2}
}

func TestDragPersistsAcrossReload(t *testing.T) {
	path := openTasks(t, ".yaml",
		createRange(t, "t1", "2024-10-10", "2024-10-11", "Review"),
		createRange(t, "t2", "2024-10-21", "2024-10-21", "Dentist"),
	)
	c := openCalendar(t, path)

	var saveErr error
	c.OnUpdateTask(func(event.TaskUpdate) {
		saveErr = taskfile.Save(path, c.Tasks())
	})

	b := bars(c, "t1")
	if len(b) != 1 {
		t.Fatalf("bars = %d, want 1", len(b))
	}
	from := geom.Point{X: b[0].Rect.X + 5, Y: b[0].Rect.Y + 5}
	to := cellCenter(t, c, "2024-10-13")
	c.PointerDown(from, calendar.ButtonLeft)
	c.PointerMove(to)
	c.PointerUp(to, calendar.ButtonLeft)
	if saveErr != nil {
		t.Fatalf("saving after drag: %v", saveErr)
	}

	reloaded := openCalendar(t, path)
	got, ok := reloaded.Task("t1")
	if !ok {
		t.Fatal("t1 missing after reload")
	}
	if got.StartTime != "2024-10-13" || got.EndTime != "2024-10-14" {
		t.Errorf("t1 = %s..%s, want 2024-10-13..2024-10-14", got.StartTime, got.EndTime)
	}
	if n := len(bars(reloaded, "t1")); n != 2 {
		t.Errorf("bars after reload = %d, want one per week", n)
	}
	if _, ok := reloaded.Task("t2"); !ok {
		t.Error("untouched task lost on save")
	}
}

func TestTaskFileFormatsAgree(t *testing.T) {
	tasks := []task.Range{
		createRange(t, "a", "2024-10-01", "2024-10-20", "Trip"),
		createRange(t, "b", "2024-10-07", "2024-10-07", "Dentist"),
	}

	var layouts []string
	for _, ext := range []string{".yaml", ".toml", ".json"} {
		c := openCalendar(t, openTasks(t, ext, tasks...))
		var ids []string
		for _, pl := range c.Layout().Placed {
			ids = append(ids, pl.Segment.ParentID+"@"+pl.Segment.StartTime)
		}
		layouts = append(layouts, strings.Join(ids, ","))
	}
	for i := 1; i < len(layouts); i++ {
		if layouts[i] != layouts[0] {
			t.Errorf("layout %d = %s, want %s", i, layouts[i], layouts[0])
		}
	}
}

func TestImportICSThenExport(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//taskcal//test//EN",
		"BEGIN:VEVENT",
		"UID:offsite@test",
		"DTSTAMP:20241001T000000Z",
		"DTSTART;VALUE=DATE:20241015",
		"DTEND;VALUE=DATE:20241018",
		"SUMMARY:Offsite",
		"COLOR:#aabbcc",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	tasks, skipped, err := taskfile.ImportICS(strings.NewReader(ics))
	if err != nil || len(skipped) != 0 {
		t.Fatalf("import: %v %v", err, skipped)
	}
	c := openCalendar(t, openTasks(t, ".json", tasks...))

	b := bars(c, "offsite@test")
	if len(b) != 1 {
		t.Fatalf("bars = %d, want 1", len(b))
	}

	var buf bytes.Buffer
	if err := export.PNG(&buf, c.Renderer(), export.Options{PixelRatio: 1}); err != nil {
		t.Fatalf("export: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 780 || got.Y != 730 {
		t.Errorf("image = %v, want 780x730", got)
	}

	// Right end of the bar, clear of the label and the rounded corners.
	r := b[0].Rect
	px := color.NRGBAModel.Convert(img.At(int(r.Right())-10, int(r.Y+r.H/2))).(color.NRGBA)
	if px.R != 0xaa || px.G != 0xbb || px.B != 0xcc {
		t.Errorf("bar pixel = %v, want #aabbcc", px)
	}
}
