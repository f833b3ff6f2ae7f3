package utils

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/routine/internal/constants"
)

// ToMinutes converts an hour and minute pair to minutes from midnight.
// No bounds checking is performed; callers guarantee valid ranges.
func ToMinutes(hour, minute int) int {
	return hour*60 + minute
}

// FromMinutes converts minutes from midnight back to an hour and minute pair.
// Values at or past constants.MinutesPerDay yield hours above 23; callers that
// shift intervals forward must check for that themselves.
func FromMinutes(total int) (hour, minute int) {
	return total / 60, total % 60
}

// InDay reports whether a minute-of-day value is a valid clock time (00:00-23:59).
func InDay(total int) bool {
	return total >= 0 && total < constants.MinutesPerDay
}

// DurationLabel returns a human readable duration between two clock times:
// "45m", "2h" or "1h 30m". A zero duration yields "0m".
func DurationLabel(startHour, startMinute, endHour, endMinute int) string {
	total := ToMinutes(endHour, endMinute) - ToMinutes(startHour, startMinute)
	hours := total / 60
	minutes := total % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// FormatClock formats an hour and minute as HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseClock parses a time string in the standard format (HH:MM) into an hour and minute.
func ParseClock(timeStr string) (hour, minute int, err error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(timeStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", timeStr, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	h, m, err := ParseClock(timeStr)
	if err != nil {
		return 0, err
	}
	return ToMinutes(h, m), nil
}

// Capitalize upper-cases the first letter of a word ("monday" -> "Monday").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Today returns the date string (YYYY-MM-DD) for the given instant in its own location.
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}

// ParseDate parses a date string (YYYY-MM-DD) at midnight in the given location.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// DaysBetween returns the number of whole calendar days from a to b, ignoring time of day.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, _, err := ParseClock(timeStr)
	return err == nil
}

// Streak counts how many of dates (YYYY-MM-DD, unique, any order) form an
// unbroken run of days ending on today.
func Streak(dates []string, today time.Time) int {
	sorted := slices.Clone(dates)
	slices.Sort(sorted)
	slices.Reverse(sorted)

	streak := 0
	for i, date := range sorted {
		d, err := ParseDate(date, today.Location())
		if err != nil || DaysBetween(d, today) != i {
			break
		}
		streak++
	}
	return streak
}
