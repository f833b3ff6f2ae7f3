package reminder

import (
	"context"
	"fmt"

	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/logger"
	"github.com/julianstephens/routine/internal/models"
)

// Trigger is a weekly recurring point in time. Weekday follows the
// Sunday=0 convention.
type Trigger struct {
	Weekday int `json:"weekday"`
	Hour    int `json:"hour"`
	Minute  int `json:"minute"`
}

// Content is what the user sees when a reminder fires.
type Content struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Scheduler registers and cancels weekly reminders.
type Scheduler interface {
	ScheduleWeekly(ctx context.Context, trigger Trigger, content Content) (string, error)
	Cancel(ctx context.Context, id string) error
}

// Binding keeps an activity's reminders in step with its day and start time.
// Every failure is logged and swallowed; a missing reminder never blocks an
// activity mutation.
type Binding struct {
	sched Scheduler
	lead  int
}

// NewBinding returns a Binding that places the advance reminder leadMinutes
// before the start. A non-positive lead falls back to five minutes.
func NewBinding(sched Scheduler, leadMinutes int) *Binding {
	if leadMinutes <= 0 {
		leadMinutes = constants.DefaultReminderLeadMin
	}
	return &Binding{sched: sched, lead: leadMinutes}
}

// Bind registers the advance and main reminders for a and returns the encoded
// handle. ok is false when nothing usable was registered.
func (b *Binding) Bind(ctx context.Context, a models.Activity) (handle string, ok bool) {
	if b == nil || b.sched == nil {
		return "", false
	}
	weekday := a.Day.Number()
	if weekday < 0 {
		logger.Warn("Cannot schedule reminder for unknown weekday", "id", a.ID, "day", a.Day)
		return "", false
	}

	// the advance reminder stays on the same weekday even when it wraps past midnight
	advanceAt := (a.Start() - b.lead + constants.MinutesPerDay) % constants.MinutesPerDay
	advance, err := b.sched.ScheduleWeekly(ctx,
		Trigger{Weekday: weekday, Hour: advanceAt / 60, Minute: advanceAt % 60},
		Content{
			Title: constants.AdvanceReminderTitle,
			Body:  fmt.Sprintf("Coming up in %d minutes: %s", b.lead, a.Title),
		})
	if err != nil {
		logger.Warn("Failed to schedule advance reminder", "id", a.ID, "error", err)
		return "", false
	}

	main, err := b.sched.ScheduleWeekly(ctx,
		Trigger{Weekday: weekday, Hour: a.StartHour, Minute: a.StartMinute},
		Content{
			Title: constants.MainReminderTitle,
			Body:  fmt.Sprintf("Time to do: %s", a.Title),
		})
	if err != nil {
		logger.Warn("Failed to schedule reminder", "id", a.ID, "error", err)
		if cerr := b.sched.Cancel(ctx, advance); cerr != nil {
			logger.Warn("Failed to cancel orphaned advance reminder", "reminder", advance, "error", cerr)
		}
		return "", false
	}

	logger.Debug("Reminders scheduled", "id", a.ID, "title", a.Title,
		"advance", fmt.Sprintf("%02d:%02d", advanceAt/60, advanceAt%60),
		"main", a.TimeRange())
	return Handle{Advance: advance, Main: main}.Encode(), true
}

// Unbind cancels every registration referenced by handle.
func (b *Binding) Unbind(ctx context.Context, handle string) {
	if b == nil || b.sched == nil || handle == "" {
		return
	}
	h, err := ParseHandle(handle)
	if err != nil {
		logger.Warn("Ignoring unreadable reminder handle", "handle", handle, "error", err)
		return
	}
	for _, id := range h.IDs() {
		if err := b.sched.Cancel(ctx, id); err != nil {
			logger.Warn("Failed to cancel reminder", "reminder", id, "error", err)
		}
	}
}
