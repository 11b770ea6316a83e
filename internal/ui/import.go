package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskcal/internal/task"
	"github.com/javiermolinar/taskcal/internal/taskfile"
)

// ErrSameFile is returned when importing a file into itself.
var ErrSameFile = errors.New("source file matches the task file")

func (a *App) importCmd() *cobra.Command {
	var out string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import tasks from an iCalendar file",
		Long: `Import every event of an iCalendar file as a task.

Events are merged into the task file by UID; an imported event replaces
a task with the same id. Events without a usable start date are
skipped and reported.

Example:
  taskcal import ~/Downloads/holidays.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = a.config.Tasks.Path
			}
			destPath, err := resolvePath(out)
			if err != nil {
				return err
			}
			if sourcePath == destPath {
				return ErrSameFile
			}

			f, err := os.Open(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source file does not exist: %s", sourcePath)
				}
				return fmt.Errorf("opening source file: %w", err)
			}
			defer func() { _ = f.Close() }()

			var existing []task.Range
			if !replace {
				existing, err = taskfile.Load(destPath)
				if err != nil {
					return err
				}
			}

			res, err := importEvents(f, existing)
			if err != nil {
				return err
			}
			if err := taskfile.Save(destPath, res.tasks); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Imported %s from %s into %s\n",
				formatStats(plural(res.imported, "task")), sourcePath, destPath)
			if res.replaced > 0 {
				fmt.Fprintln(w, formatMuted("  "+plural(res.replaced, "existing task")+" updated"))
			}
			for _, s := range res.skipped {
				fmt.Fprintln(w, formatWarn("  skipped: "+s.Error()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Task file to write (defaults to the configured task file)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the task file instead of merging")
	return cmd
}

type importResult struct {
	tasks    []task.Range
	imported int
	replaced int
	skipped  []error
}

// importEvents merges the events of an iCalendar stream into existing,
// keeping the existing order and appending new ids.
func importEvents(r io.Reader, existing []task.Range) (importResult, error) {
	events, skipped, err := taskfile.ImportICS(r)
	if err != nil {
		return importResult{}, err
	}

	res := importResult{skipped: skipped, imported: len(events)}
	res.tasks = append(res.tasks, existing...)
	index := make(map[string]int, len(res.tasks))
	for i, t := range res.tasks {
		index[t.ID] = i
	}
	for _, ev := range events {
		if i, ok := index[ev.ID]; ok {
			res.tasks[i] = ev
			res.replaced++
			continue
		}
		index[ev.ID] = len(res.tasks)
		res.tasks = append(res.tasks, ev)
	}
	return res, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
