package view

import (
	"strings"
	"testing"
)

func TestTaskDetailFooterHidesDeleteInReadMode(t *testing.T) {
	styles := ModalStyles{}

	edit := TaskDetailFooter(false, styles)
	if !strings.Contains(edit, "[x] Delete") {
		t.Fatalf("expected delete button in edit mode, got %q", edit)
	}

	read := TaskDetailFooter(true, styles)
	if strings.Contains(read, "[x] Delete") {
		t.Fatalf("expected no delete button in read mode, got %q", read)
	}
}

func TestTaskListFooter(t *testing.T) {
	if got := TaskListFooter(ModalStyles{}); !strings.HasPrefix(got, "[Enter] Open") {
		t.Fatalf("footer = %q", got)
	}
}
