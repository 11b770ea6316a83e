// Package debuglog writes structured debug events as JSON lines.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "taskcal-debug.log"

// Logger receives structured debug events.
type Logger interface {
	Log(event string, data map[string]any)
}

// Nop discards every event.
type Nop struct{}

// Log implements Logger.
func (Nop) Log(string, map[string]any) {}

// OrNop returns l, or Nop when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}

// File logs events as JSON lines. A nil *File is a valid disabled logger.
type File struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer
	seq int
	now func() time.Time
}

// New returns a logger writing to w.
func New(w io.Writer) *File {
	return &File{w: w, now: time.Now}
}

// Open creates (or truncates) the log file at path. When enabled is false
// it returns a nil logger, which drops every event.
func Open(path string, enabled bool) (*File, error) {
	if !enabled {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}
	l := New(f)
	l.c = f
	l.Log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return l, nil
}

// Close writes a final entry and closes the underlying file.
func (l *File) Close() error {
	if l == nil {
		return nil
	}
	l.Log("DEBUG_END", map[string]any{"time": time.Now().Format(time.RFC3339)})
	if l.c == nil {
		return nil
	}
	return l.c.Close()
}

// Log writes one entry. The seq, ts and event keys take precedence over
// the same keys in data.
func (l *File) Log(event string, data map[string]any) {
	if l == nil || l.w == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := make(map[string]any, len(data)+3)
	for k, v := range data {
		entry[k] = v
	}
	entry["seq"] = l.seq
	entry["ts"] = l.now().Format("15:04:05.000")
	entry["event"] = event

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// Error logs err under the given context.
func Error(l Logger, context string, err error) {
	if l == nil || err == nil {
		return
	}
	l.Log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// Truncate shortens s to max bytes for log output.
func Truncate(s string, max int) string {
	if len(s) <= max || max < 4 {
		return s
	}
	return s[:max-3] + "..."
}
