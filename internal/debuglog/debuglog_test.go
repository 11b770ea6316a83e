package debuglog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestFile_Log(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.now = func() time.Time { return time.Date(2024, 10, 7, 9, 30, 0, 0, time.UTC) }

	l.Log("LAYOUT_PASS", map[string]any{"placed": 3, "event": "spoofed"})
	Error(l, "render", errors.New("boom"))

	var lines []map[string]any
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		lines = append(lines, entry)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["event"] != "LAYOUT_PASS" {
		t.Errorf("event = %v, want LAYOUT_PASS", lines[0]["event"])
	}
	if lines[0]["seq"] != float64(1) || lines[1]["seq"] != float64(2) {
		t.Errorf("seq = %v, %v", lines[0]["seq"], lines[1]["seq"])
	}
	if lines[0]["ts"] != "09:30:00.000" {
		t.Errorf("ts = %v", lines[0]["ts"])
	}
	if lines[0]["placed"] != float64(3) {
		t.Errorf("placed = %v", lines[0]["placed"])
	}
	if lines[1]["event"] != "ERROR" || lines[1]["error"] != "boom" || lines[1]["context"] != "render" {
		t.Errorf("unexpected error entry %v", lines[1])
	}
}

func TestOpen_Disabled(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "debug.log"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l != nil {
		t.Fatal("disabled logger should be nil")
	}
	// A nil logger is safe to use.
	l.Log("IGNORED", nil)
	if err := l.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
}

func TestOpen_Enabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	l, err := Open(path, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Log("X", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if l.seq != 3 {
		t.Errorf("seq = %d, want 3 (start, X, end)", l.seq)
	}
}

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(Nop); !ok {
		t.Error("OrNop(nil) should return Nop")
	}
	var buf bytes.Buffer
	l := New(&buf)
	if OrNop(l) != Logger(l) {
		t.Error("OrNop should pass through a non-nil logger")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdefghij", 8); got != "abcde..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 8); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
}
