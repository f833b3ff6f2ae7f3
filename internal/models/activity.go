package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/routine/internal/utils"
)

// Weekday is a lowercase weekday symbol. Activities recur weekly on their day.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekDays lists the weekdays in display order (Monday first).
var WeekDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// notification weekday convention: Sunday=0 ... Saturday=6
var weekdayNumbers = map[Weekday]int{
	Sunday:    0,
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
}

var weekdayAliases = map[string]Weekday{
	"mon": Monday,
	"tue": Tuesday,
	"wed": Wednesday,
	"thu": Thursday,
	"fri": Friday,
	"sat": Saturday,
	"sun": Sunday,
}

// Valid reports whether d is one of the seven weekday symbols.
func (d Weekday) Valid() bool {
	_, ok := weekdayNumbers[d]
	return ok
}

// Number maps the weekday to the 0-6 convention used by the notification
// collaborator, with Sunday=0. Returns -1 for an unknown symbol.
func (d Weekday) Number() int {
	n, ok := weekdayNumbers[d]
	if !ok {
		return -1
	}
	return n
}

// Label returns the capitalized weekday name.
func (d Weekday) Label() string {
	return utils.Capitalize(string(d))
}

// WeekdayOf returns the weekday symbol of t in its own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(strings.ToLower(t.Weekday().String()))
}

// ParseWeekday parses a weekday symbol, accepting full names, three-letter
// abbreviations, and the 0-6 numeric form (0=Sunday).
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d := Weekday(s); d.Valid() {
		return d, nil
	}
	if d, ok := weekdayAliases[s]; ok {
		return d, nil
	}
	for d, n := range weekdayNumbers {
		if s == fmt.Sprint(n) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid weekday: %s", s)
}

// Activity is a weekly-recurring, time-boxed routine item. Its interval is
// half-open: [start, end) in minutes of the day.
type Activity struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Day            Weekday `json:"day"`
	StartHour      int     `json:"startHour"`
	StartMinute    int     `json:"startMinute"`
	EndHour        int     `json:"endHour"`
	EndMinute      int     `json:"endMinute"`
	GoalID         *int64  `json:"goalId,omitempty"`
	NotificationID *string `json:"notificationId,omitempty"`
}

// Start returns the start of the interval in minutes from midnight.
func (a Activity) Start() int {
	return utils.ToMinutes(a.StartHour, a.StartMinute)
}

// End returns the end of the interval in minutes from midnight.
func (a Activity) End() int {
	return utils.ToMinutes(a.EndHour, a.EndMinute)
}

// Duration returns the length of the interval in minutes.
func (a Activity) Duration() int {
	return a.End() - a.Start()
}

// DurationLabel returns the human readable length ("1h 30m").
func (a Activity) DurationLabel() string {
	return utils.DurationLabel(a.StartHour, a.StartMinute, a.EndHour, a.EndMinute)
}

// TimeRange formats the interval as "HH:MM - HH:MM".
func (a Activity) TimeRange() string {
	return utils.FormatClock(a.StartHour, a.StartMinute) + " - " + utils.FormatClock(a.EndHour, a.EndMinute)
}

// WithInterval returns a copy of a moved to [start, end), preserving everything else.
func (a Activity) WithInterval(start, end int) Activity {
	a.StartHour, a.StartMinute = utils.FromMinutes(start)
	a.EndHour, a.EndMinute = utils.FromMinutes(end)
	return a
}

// HasReminder reports whether a reminder handle is attached.
func (a Activity) HasReminder() bool {
	return a.NotificationID != nil && *a.NotificationID != ""
}

// Validate checks the structural fields of an activity. It does not check the
// interval ordering; the scheduler reports that as an invalid time.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if !a.Day.Valid() {
		return fmt.Errorf("invalid day: %q", a.Day)
	}
	if a.StartHour < 0 || a.StartHour > 23 || a.EndHour < 0 || a.EndHour > 23 {
		return fmt.Errorf("hours must be between 0 and 23")
	}
	if a.StartMinute < 0 || a.StartMinute > 59 || a.EndMinute < 0 || a.EndMinute > 59 {
		return fmt.Errorf("minutes must be between 0 and 59")
	}
	return nil
}
