// Package taskfile reads and writes logical tasks as YAML, TOML or JSON,
// and imports all-day events from iCalendar files.
package taskfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/taskcal/internal/task"
)

// Errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported task file format")
	ErrReadOnlyFormat    = errors.New("format can only be imported")
)

// Format is a task file encoding.
type Format string

// Formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
	ICS  Format = "ics"
)

// FormatOf returns the format for a file name, by extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	case ".ics", ".ical":
		return ICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// document is the on-disk shape of a task file.
type document struct {
	Tasks []task.Range `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// Decode parses task data in the given format. Only logical tasks are
// returned; validation is left to the task collection.
func Decode(data []byte, f Format) ([]task.Range, error) {
	var doc document
	var err error
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case TOML:
		err = toml.Unmarshal(data, &doc)
	case JSON:
		err = json.Unmarshal(data, &doc)
	case ICS:
		ranges, _, ierr := ImportICS(bytes.NewReader(data))
		return ranges, ierr
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s tasks: %w", f, err)
	}
	return logical(doc.Tasks), nil
}

// Encode serializes logical tasks. Week-segment fields are never written.
func Encode(ranges []task.Range, f Format) ([]byte, error) {
	doc := document{Tasks: logical(ranges)}
	if doc.Tasks == nil {
		doc.Tasks = []task.Range{}
	}
	switch f {
	case YAML:
		return yaml.Marshal(doc)
	case TOML:
		return toml.Marshal(doc)
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case ICS:
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyFormat, f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Load reads a task file. A missing file yields no tasks and no error.
func Load(path string) ([]task.Range, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	return Decode(data, f)
}

// Save writes tasks to path atomically, creating the directory if needed.
func Save(path string, ranges []task.Range) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(ranges, f)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating task directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".taskcal-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing task file: %w", err)
	}
	return nil
}

// logical strips segment-only fields and drops week-segments.
func logical(ranges []task.Range) []task.Range {
	var out []task.Range
	for _, r := range ranges {
		if r.IsSegment() {
			continue
		}
		r.Day, r.StartSign, r.EndSign = 0, false, false
		out = append(out, r)
	}
	return out
}
