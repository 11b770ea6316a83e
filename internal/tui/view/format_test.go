package view

import "testing"

func TestFormatSpan(t *testing.T) {
	if got := FormatSpan(1); got != "1 day" {
		t.Errorf("FormatSpan(1) = %q", got)
	}
	if got := FormatSpan(12); got != "12 days" {
		t.Errorf("FormatSpan(12) = %q", got)
	}
}

func TestFormatDates(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{"2024-02-29", "2024-02-29", "Thu Feb 29, 2024"},
		{"2024-12-30", "2025-01-02", "Mon Dec 30, 2024 - Thu Jan 2, 2025"},
		{"bogus", "bogus", "bogus"},
	}
	for _, tt := range tests {
		if got := FormatDates(tt.start, tt.end); got != tt.want {
			t.Errorf("FormatDates(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}
