package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseKey(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		got, err := ParseKey("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	invalid := []string{"", "2025-1-15", "01-15-2025", "2025-02-30", "2025/01/15", "2025-01-15T00:00"}
	for _, key := range invalid {
		t.Run("invalid "+key, func(t *testing.T) {
			_, err := ParseKey(key)
			if !errors.Is(err, ErrInvalidDateKey) {
				t.Errorf("got error %v, want %v", err, ErrInvalidDateKey)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		key  string
		n    int
		want string
	}{
		{name: "month rollover", key: "2024-10-31", n: 1, want: "2024-11-01"},
		{name: "year rollover", key: "2024-12-31", n: 1, want: "2025-01-01"},
		{name: "leap day", key: "2024-02-28", n: 1, want: "2024-02-29"},
		{name: "negative across year", key: "2025-01-01", n: -1, want: "2024-12-31"},
		{name: "zero", key: "2024-10-07", n: 0, want: "2024-10-07"},
		{name: "across dst change", key: "2024-03-30", n: 2, want: "2024-04-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddDays(tt.key, tt.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("AddDays(%q, %d) = %q, want %q", tt.key, tt.n, got, tt.want)
			}
		})
	}

	t.Run("invalid key", func(t *testing.T) {
		if _, err := AddDays("2024-13-01", 1); !errors.Is(err, ErrInvalidDateKey) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateKey)
		}
	})
}

func TestDayCount(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-10-01", "2024-10-20", 19},
		{"2024-10-20", "2024-10-01", -19},
		{"2024-10-07", "2024-10-07", 0},
		{"2024-12-30", "2025-01-02", 3},
		{"2024-02-01", "2024-03-01", 29},
		{"1700-01-01", "2024-01-01", 118338},
		{"2000-01-01", "1600-01-01", -146097},
	}

	for _, tt := range tests {
		got, err := DayCount(tt.a, tt.b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("DayCount(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpanDays(t *testing.T) {
	got, err := SpanDays("2024-10-20", "2024-10-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 20 {
		t.Errorf("SpanDays = %d, want 20", got)
	}
}

func TestMonthShift(t *testing.T) {
	tests := []struct {
		year, month, n int
		wantY, wantM   int
	}{
		{2024, 12, 1, 2025, 1},
		{2024, 1, -1, 2023, 12},
		{2024, 10, 0, 2024, 10},
		{2024, 10, 15, 2026, 1},
		{2024, 3, -27, 2021, 12},
		{2024, 12, 12, 2025, 12},
	}

	for _, tt := range tests {
		y, m := MonthShift(tt.year, tt.month, tt.n)
		if y != tt.wantY || m != tt.wantM {
			t.Errorf("MonthShift(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, tt.n, y, m, tt.wantY, tt.wantM)
		}
	}
}

func TestFirstAndLastOfMonth(t *testing.T) {
	tests := []struct {
		year, month int
		wantLast    string
		wantDays    int
	}{
		{2024, 2, "2024-02-29", 29},
		{2023, 2, "2023-02-28", 28},
		{2024, 10, "2024-10-31", 31},
		{2024, 11, "2024-11-30", 30},
	}

	for _, tt := range tests {
		first, last, days, err := FirstAndLastOfMonth(tt.year, tt.month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Day() != 1 || int(first.Month()) != tt.month {
			t.Errorf("first = %v, want day 1 of month %d", first, tt.month)
		}
		if got := last.Format(KeyLayout); got != tt.wantLast {
			t.Errorf("last = %s, want %s", got, tt.wantLast)
		}
		if days != tt.wantDays {
			t.Errorf("days = %d, want %d", days, tt.wantDays)
		}
	}

	if _, _, _, err := FirstAndLastOfMonth(2024, 13); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("got error %v, want %v", err, ErrInvalidMonth)
	}
}

func TestNextSunday(t *testing.T) {
	tests := []struct {
		key, want string
	}{
		{"2024-10-01", "2024-10-06"}, // Tuesday
		{"2024-10-06", "2024-10-06"}, // Sunday
		{"2024-10-07", "2024-10-13"}, // Monday
		{"2024-12-30", "2025-01-05"},
	}

	for _, tt := range tests {
		got, err := NextSunday(tt.key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("NextSunday(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestMondayIndex(t *testing.T) {
	sunday := time.Date(2024, 10, 6, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)
	if got := MondayIndex(sunday); got != 6 {
		t.Errorf("MondayIndex(sunday) = %d, want 6", got)
	}
	if got := MondayIndex(monday); got != 0 {
		t.Errorf("MondayIndex(monday) = %d, want 0", got)
	}
}

func TestParseInput(t *testing.T) {
	now := time.Date(2024, 10, 7, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty is today", input: "", want: "2024-10-07"},
		{name: "today keyword", input: "Today", want: "2024-10-07"},
		{name: "absolute key", input: "2024-12-25", want: "2024-12-25"},
		{name: "tomorrow", input: "tomorrow", want: "2024-10-08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.input, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
