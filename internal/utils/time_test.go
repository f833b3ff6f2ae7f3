package utils

import (
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		want   int
	}{
		{name: "midnight", hour: 0, minute: 0, want: 0},
		{name: "morning", hour: 9, minute: 30, want: 570},
		{name: "last minute", hour: 23, minute: 59, want: 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMinutes(tt.hour, tt.minute); got != tt.want {
				t.Errorf("ToMinutes(%d, %d) = %d, want %d", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestFromMinutes(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		wantHour   int
		wantMinute int
	}{
		{name: "midnight", total: 0, wantHour: 0, wantMinute: 0},
		{name: "afternoon", total: 810, wantHour: 13, wantMinute: 30},
		{name: "last minute", total: 1439, wantHour: 23, wantMinute: 59},
		{name: "rollover past midnight", total: 1470, wantHour: 24, wantMinute: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := FromMinutes(tt.total)
			if h != tt.wantHour || m != tt.wantMinute {
				t.Errorf("FromMinutes(%d) = (%d, %d), want (%d, %d)", tt.total, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestInDay(t *testing.T) {
	if !InDay(0) || !InDay(1439) {
		t.Error("InDay() rejected a valid clock time")
	}
	if InDay(1440) || InDay(-1) {
		t.Error("InDay() accepted an out-of-range value")
	}
}

func TestDurationLabel(t *testing.T) {
	tests := []struct {
		name           string
		sh, sm, eh, em int
		want           string
	}{
		{name: "minutes only", sh: 9, sm: 0, eh: 9, em: 45, want: "45m"},
		{name: "hours only", sh: 9, sm: 0, eh: 11, em: 0, want: "2h"},
		{name: "hours and minutes", sh: 9, sm: 15, eh: 10, em: 45, want: "1h 30m"},
		{name: "zero duration", sh: 9, sm: 0, eh: 9, em: 0, want: "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationLabel(tt.sh, tt.sm, tt.eh, tt.em); got != tt.want {
				t.Errorf("DurationLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "valid", input: "07:05", wantHour: 7, wantMinute: 5},
		{name: "padded with spaces", input: " 18:30 ", wantHour: 18, wantMinute: 30},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, err := ParseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && (h != tt.wantHour || m != tt.wantMinute) {
				t.Errorf("ParseClock(%q) = (%d, %d), want (%d, %d)", tt.input, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(7, 5); got != "07:05" {
		t.Errorf("FormatClock(7, 5) = %q, want %q", got, "07:05")
	}
}

func TestCapitalize(t *testing.T) {
	if got := Capitalize("monday"); got != "Monday" {
		t.Errorf("Capitalize(monday) = %q", got)
	}
	if got := Capitalize(""); got != "" {
		t.Errorf("Capitalize(\"\") = %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, time.March, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 3, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 2 {
		t.Errorf("DaysBetween() = %d, want 2", got)
	}
	if got := DaysBetween(b, a); got != -2 {
		t.Errorf("DaysBetween() reversed = %d, want -2", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-14", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.Day() != 14 || d.Month() != time.February || d.Hour() != 0 {
		t.Errorf("ParseDate() = %v", d)
	}
	if _, err := ParseDate("14/02/2025", time.UTC); err == nil {
		t.Error("ParseDate() accepted a malformed date")
	}
}

func TestStreak(t *testing.T) {
	today := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"today only", []string{"2026-03-10"}, 1},
		{"unordered run", []string{"2026-03-08", "2026-03-10", "2026-03-09"}, 3},
		{"missing today", []string{"2026-03-09", "2026-03-08"}, 0},
		{"gap", []string{"2026-03-10", "2026-03-08"}, 1},
		{"across month end", []string{"2026-03-01", "2026-02-28"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.dates, today); got != tt.want {
				t.Errorf("Streak(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}

	end := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	if got := Streak([]string{"2026-02-28", "2026-03-01", "2026-02-27"}, end); got != 3 {
		t.Errorf("Streak across month end = %d, want 3", got)
	}
}
