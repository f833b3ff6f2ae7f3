package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/storage"
)

var (
	// ErrPermissionDenied is returned while reminders are switched off.
	ErrPermissionDenied = errors.New("reminders are disabled")
	ErrInvalidTrigger   = errors.New("invalid reminder trigger")
	ErrUnknownReminder  = errors.New("unknown reminder")
)

// Registration is one stored weekly reminder.
type Registration struct {
	ID        string  `json:"id"`
	Trigger   Trigger `json:"trigger"`
	Content   Content `json:"content"`
	CreatedAt string  `json:"createdAt"`
}

// Registry is the Scheduler used by the application. Registrations live in
// the key-value store and are delivered by `routine notify`.
type Registry struct {
	kv      storage.KV
	enabled bool
	newID   func() string
	now     func() time.Time
}

func NewRegistry(kv storage.KV, enabled bool) *Registry {
	return &Registry{
		kv:      kv,
		enabled: enabled,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

func (r *Registry) ScheduleWeekly(ctx context.Context, trigger Trigger, content Content) (string, error) {
	if !r.enabled {
		return "", ErrPermissionDenied
	}
	if trigger.Weekday < 0 || trigger.Weekday > 6 ||
		trigger.Hour < 0 || trigger.Hour > 23 ||
		trigger.Minute < 0 || trigger.Minute > 59 {
		return "", fmt.Errorf("%w: weekday %d at %02d:%02d", ErrInvalidTrigger, trigger.Weekday, trigger.Hour, trigger.Minute)
	}

	regs := r.List(ctx)
	reg := Registration{
		ID:        r.newID(),
		Trigger:   trigger,
		Content:   content,
		CreatedAt: r.now().UTC().Format(time.RFC3339),
	}
	if err := storage.SaveList(ctx, r.kv, constants.KeyReminders, append(regs, reg)); err != nil {
		return "", err
	}
	return reg.ID, nil
}

func (r *Registry) Cancel(ctx context.Context, id string) error {
	regs := r.List(ctx)
	kept := regs[:0]
	found := false
	for _, reg := range regs {
		if reg.ID == id {
			found = true
			continue
		}
		kept = append(kept, reg)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownReminder, id)
	}
	return storage.SaveList(ctx, r.kv, constants.KeyReminders, kept)
}

// CancelAll removes every registration.
func (r *Registry) CancelAll(ctx context.Context) error {
	return storage.SaveList[Registration](ctx, r.kv, constants.KeyReminders, nil)
}

// List returns every stored registration.
func (r *Registry) List(ctx context.Context) []Registration {
	return storage.LoadList[Registration](ctx, r.kv, constants.KeyReminders)
}

// Due returns the registrations that fire in the minute containing now.
func (r *Registry) Due(ctx context.Context, now time.Time) []Registration {
	var due []Registration
	for _, reg := range r.List(ctx) {
		if reg.Trigger.Weekday == int(now.Weekday()) &&
			reg.Trigger.Hour == now.Hour() &&
			reg.Trigger.Minute == now.Minute() {
			due = append(due, reg)
		}
	}
	return due
}
