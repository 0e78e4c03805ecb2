package report

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to its monday",
			in:   time.Date(2025, 6, 18, 15, 0, 0, 0, time.Local),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local),
		},
		{
			name: "monday maps to itself",
			in:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2025, 6, 22, 23, 0, 0, 0, time.Local),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEndOfWeek(t *testing.T) {
	in := time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
	got := EndOfWeek(in)
	if got.Day() != 22 || got.Month() != time.June || got.Hour() != 23 {
		t.Errorf("EndOfWeek(%v) = %v", in, got)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		in   time.Time
		want int
	}{
		{time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local), 28},
		{time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local), 29},
		{time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), 30},
		{time.Date(2025, 7, 31, 0, 0, 0, 0, time.Local), 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.in); got != tt.want {
			t.Errorf("DaysInMonth(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDayBoundaries(t *testing.T) {
	in := time.Date(2025, 6, 18, 13, 45, 12, 345, time.Local)

	start := StartOfDay(in)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Errorf("StartOfDay(%v) = %v", in, start)
	}

	end := EndOfDay(in)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay(%v) = %v", in, end)
	}
	if !end.Before(StartOfDay(in.AddDate(0, 0, 1))) {
		t.Error("EndOfDay must stay inside the same calendar day")
	}
}

func TestDayKey(t *testing.T) {
	in := time.Date(2025, 6, 8, 23, 59, 0, 0, time.Local)
	if got := DayKey(in); got != "2025-06-08" {
		t.Errorf("DayKey(%v) = %q", in, got)
	}
}
