package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/logger"
	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/storage"
)

var (
	// ErrInvalidActivity reports a missing title, unknown day or an
	// out-of-range hour or minute.
	ErrInvalidActivity = errors.New("invalid activity")
	// ErrInvalidTime reports an end time at or before the start time.
	ErrInvalidTime = errors.New("end time must be after start time")
	// ErrCollision reports that the candidate overlaps an existing activity
	// on the same day.
	ErrCollision = errors.New("there is already an activity scheduled during this time")
	// ErrOutOfRange reports that making room for the candidate would push
	// another activity past the end of the day.
	ErrOutOfRange = errors.New("activity would run past midnight")
	// ErrNotFound reports an id that matches no stored activity.
	ErrNotFound = errors.New("activity not found")
)

// Binder attaches reminders to activities. Failures are the binder's to log;
// Bind reports ok=false when no reminder could be registered.
type Binder interface {
	Bind(ctx context.Context, a models.Activity) (handle string, ok bool)
	Unbind(ctx context.Context, handle string)
}

type Option func(*Scheduler)

// WithClock overrides the clock used to derive new activity ids.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// Scheduler owns the weekly activity list for one session. It keeps the
// list free of same-day overlaps, persists every change under
// "routine-activities" and keeps reminders in step with activity times.
//
// A Scheduler is not safe for concurrent use. Callers must serialize Add,
// Update and Delete; the CLI runs one command per process and the TUI calls
// from its single update loop.
type Scheduler struct {
	kv         storage.KV
	binder     Binder
	now        func() time.Time
	activities []models.Activity
}

// New returns an empty Scheduler; call Load to read the stored list.
// binder may be nil, in which case no reminders are managed.
func New(kv storage.KV, binder Binder, opts ...Option) *Scheduler {
	s := &Scheduler{
		kv:         kv,
		binder:     binder,
		now:        time.Now,
		activities: []models.Activity{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the stored one.
func (s *Scheduler) Load(ctx context.Context) {
	s.activities = storage.LoadList[models.Activity](ctx, s.kv, constants.KeyActivities)
	logger.Debug("Activities loaded", "count", len(s.activities))
}

// Activities returns a copy of the current list.
func (s *Scheduler) Activities() []models.Activity {
	return slices.Clone(s.activities)
}

// Get returns the activity with the given id.
func (s *Scheduler) Get(id int64) (models.Activity, bool) {
	for _, a := range s.activities {
		if a.ID == id {
			return a, true
		}
	}
	return models.Activity{}, false
}

// ActivitiesForDay returns the activities on day ordered by start time.
// Activities starting at the same minute keep their stored order.
func (s *Scheduler) ActivitiesForDay(day models.Weekday) []models.Activity {
	var out []models.Activity
	for _, a := range s.activities {
		if a.Day == day {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start() < out[j].Start()
	})
	return out
}

func validate(a models.Activity) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidActivity, err)
	}
	if a.End() <= a.Start() {
		return ErrInvalidTime
	}
	return nil
}

// Add schedules candidate as a new activity and returns it with its id and
// reminder handle. Its ID and NotificationID fields are ignored.
//
// A candidate that overlaps an existing activity is rejected with
// ErrCollision. That check runs against the list as it stands; Resolve runs
// afterwards to move aside anything the candidate now overlaps, which after
// a passed collision check is nothing.
func (s *Scheduler) Add(ctx context.Context, candidate models.Activity) (models.Activity, error) {
	candidate.ID = 0
	candidate.NotificationID = nil
	if err := validate(candidate); err != nil {
		return models.Activity{}, err
	}
	if HasCollision(candidate, s.activities, 0) {
		return models.Activity{}, ErrCollision
	}

	candidate.ID = s.nextID()

	adjusted, err := Resolve(candidate, s.activities, 0)
	if err != nil {
		return models.Activity{}, err
	}

	s.attachReminder(ctx, &candidate)

	s.commit(ctx, append(adjusted, candidate))
	logger.Info("Activity added", "id", candidate.ID, "title", candidate.Title, "day", candidate.Day, "time", candidate.TimeRange())
	return candidate, nil
}

// Update replaces the stored activity with the same id. Its own previous
// version never counts as a collision. The previous reminder is cancelled
// and a fresh one is registered for the new time.
func (s *Scheduler) Update(ctx context.Context, activity models.Activity) (models.Activity, error) {
	original, ok := s.Get(activity.ID)
	if !ok {
		return models.Activity{}, fmt.Errorf("%w: %d", ErrNotFound, activity.ID)
	}
	activity.NotificationID = nil
	if err := validate(activity); err != nil {
		return models.Activity{}, err
	}
	if HasCollision(activity, s.activities, activity.ID) {
		return models.Activity{}, ErrCollision
	}

	adjusted, err := Resolve(activity, s.activities, activity.ID)
	if err != nil {
		return models.Activity{}, err
	}

	s.releaseReminder(ctx, original)
	s.attachReminder(ctx, &activity)

	replaced := false
	for i := range adjusted {
		if adjusted[i].ID == activity.ID {
			adjusted[i] = activity
			replaced = true
		}
	}
	if !replaced {
		adjusted = append(adjusted, activity)
	}

	s.commit(ctx, adjusted)
	logger.Info("Activity updated", "id", activity.ID, "title", activity.Title, "day", activity.Day, "time", activity.TimeRange())
	return activity, nil
}

// Delete removes the activity with id and cancels its reminder.
func (s *Scheduler) Delete(ctx context.Context, id int64) error {
	target, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.releaseReminder(ctx, target)

	remaining := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}
	s.commit(ctx, remaining)
	logger.Info("Activity deleted", "id", id, "title", target.Title)
	return nil
}

func (s *Scheduler) attachReminder(ctx context.Context, a *models.Activity) {
	a.NotificationID = nil
	if s.binder == nil {
		return
	}
	if handle, ok := s.binder.Bind(ctx, *a); ok {
		a.NotificationID = &handle
	}
}

func (s *Scheduler) releaseReminder(ctx context.Context, a models.Activity) {
	if s.binder != nil && a.HasReminder() {
		s.binder.Unbind(ctx, *a.NotificationID)
	}
}

// commit makes list the current state and writes it through. A failed write
// is logged; the in-memory list still reflects the change.
func (s *Scheduler) commit(ctx context.Context, list []models.Activity) {
	s.activities = list
	if err := storage.SaveList(ctx, s.kv, constants.KeyActivities, list); err != nil {
		logger.Error("Failed to persist activities", "key", constants.KeyActivities, "error", err)
	}
}

// nextID derives an id from the clock in milliseconds, stepping forward
// until it is unused.
func (s *Scheduler) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= 0 {
		id = 1
	}
	for {
		if _, taken := s.Get(id); !taken {
			return id
		}
		id++
	}
}
