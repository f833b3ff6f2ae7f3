package goals

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/logger"
	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/storage"
	"github.com/julianstephens/routine/internal/utils"
)

var (
	ErrTitleRequired = errors.New("please enter a goal title")
	ErrNotFound      = errors.New("goal not found")
)

// Stats summarizes progress towards one goal.
type Stats struct {
	CompletedDays int
	TotalDays     int
	// Percentage of TargetDays completed, capped at 100.
	Percentage float64
	// Streak counts consecutive completed days ending today.
	Streak int
}

// Day is one column of a weekly progress chart.
type Day struct {
	Date      string
	Weekday   time.Weekday
	Completed bool
}

// DaySummary is the share of all goals completed on one date.
type DaySummary struct {
	Date           string
	Weekday        time.Weekday
	CompletedGoals int
	TotalGoals     int
	Percentage     float64
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// Tracker owns goals and their daily progress rows. Like the activity
// scheduler it is meant for a single caller at a time.
type Tracker struct {
	kv       storage.KV
	now      func() time.Time
	goals    []models.Goal
	progress []models.GoalProgress
}

func NewTracker(kv storage.KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:       kv,
		now:      time.Now,
		goals:    []models.Goal{},
		progress: []models.GoalProgress{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads goals and progress from storage.
func (t *Tracker) Load(ctx context.Context) {
	t.goals = storage.LoadList[models.Goal](ctx, t.kv, constants.KeyGoals)
	t.progress = storage.LoadList[models.GoalProgress](ctx, t.kv, constants.KeyGoalProgress)
}

func (t *Tracker) List() []models.Goal {
	return slices.Clone(t.goals)
}

func (t *Tracker) Get(id int64) (models.Goal, bool) {
	for _, g := range t.goals {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

// Create adds a goal. targetDays defaults to 30 and an empty category to
// "other".
func (t *Tracker) Create(ctx context.Context, title, description string, targetDays int, category models.GoalCategory) (models.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Goal{}, ErrTitleRequired
	}
	if targetDays <= 0 {
		targetDays = constants.DefaultGoalTargetDays
	}
	if category == "" {
		category = models.CategoryOther
	}
	if _, err := models.ParseGoalCategory(string(category)); err != nil {
		return models.Goal{}, err
	}

	now := t.now()
	id := now.UnixMilli()
	for {
		if _, taken := t.Get(id); !taken {
			break
		}
		id++
	}

	g := models.Goal{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
		TargetDays:  targetDays,
		CreatedAt:   now.UTC().Format(time.RFC3339),
		Category:    category,
	}
	t.goals = append(t.goals, g)
	t.saveGoals(ctx)
	logger.Info("Goal created", "id", g.ID, "title", g.Title)
	return g, nil
}

// Delete removes the goal and every progress row recorded for it.
// Activities linked to the goal keep their goal id.
func (t *Tracker) Delete(ctx context.Context, id int64) error {
	if _, ok := t.Get(id); !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	t.goals = slices.DeleteFunc(t.goals, func(g models.Goal) bool { return g.ID == id })
	t.progress = slices.DeleteFunc(t.progress, func(p models.GoalProgress) bool { return p.GoalID == id })
	t.saveGoals(ctx)
	t.saveProgress(ctx)
	logger.Info("Goal deleted", "id", id)
	return nil
}

// ToggleProgress flips the completion flag for goalID on date, creating a
// completed row when none exists.
func (t *Tracker) ToggleProgress(ctx context.Context, goalID int64, date string) (models.GoalProgress, error) {
	if _, ok := t.Get(goalID); !ok {
		return models.GoalProgress{}, fmt.Errorf("%w: %d", ErrNotFound, goalID)
	}
	if _, err := utils.ParseDate(date, time.UTC); err != nil {
		return models.GoalProgress{}, err
	}

	var row models.GoalProgress
	found := false
	for i := range t.progress {
		if t.progress[i].GoalID == goalID && t.progress[i].Date == date {
			t.progress[i].Completed = !t.progress[i].Completed
			row = t.progress[i]
			found = true
			break
		}
	}
	if !found {
		row = models.GoalProgress{GoalID: goalID, Date: date, Completed: true}
		t.progress = append(t.progress, row)
	}
	t.saveProgress(ctx)
	return row, nil
}

// Progress returns the rows recorded for goalID.
func (t *Tracker) Progress(goalID int64) []models.GoalProgress {
	var rows []models.GoalProgress
	for _, p := range t.progress {
		if p.GoalID == goalID {
			rows = append(rows, p)
		}
	}
	return rows
}

// CompletedOn reports whether goalID was completed on date.
func (t *Tracker) CompletedOn(goalID int64, date string) bool {
	for _, p := range t.progress {
		if p.GoalID == goalID && p.Date == date {
			return p.Completed
		}
	}
	return false
}

// Stats computes progress for goalID as of today. An unknown goal yields
// zero stats.
func (t *Tracker) Stats(goalID int64, today time.Time) Stats {
	g, ok := t.Get(goalID)
	if !ok {
		return Stats{}
	}
	rows := t.Progress(goalID)

	var completed []string
	for _, p := range rows {
		if p.Completed {
			completed = append(completed, p.Date)
		}
	}

	s := Stats{
		CompletedDays: len(completed),
		TotalDays:     len(rows),
		Streak:        utils.Streak(completed, today),
	}
	if g.TargetDays > 0 {
		s.Percentage = min(float64(s.CompletedDays)/float64(g.TargetDays)*100, 100)
	}
	return s
}

// Weekly returns the seven days ending today, oldest first.
func (t *Tracker) Weekly(goalID int64, today time.Time) []Day {
	days := make([]Day, 0, 7)
	for _, d := range lastSevenDays(today) {
		date := utils.Today(d)
		days = append(days, Day{Date: date, Weekday: d.Weekday(), Completed: t.CompletedOn(goalID, date)})
	}
	return days
}

// OverallWeekly returns, for each of the seven days ending today, how many
// goals were completed.
func (t *Tracker) OverallWeekly(today time.Time) []DaySummary {
	days := make([]DaySummary, 0, 7)
	for _, d := range lastSevenDays(today) {
		date := utils.Today(d)
		s := DaySummary{Date: date, Weekday: d.Weekday(), TotalGoals: len(t.goals)}
		for _, g := range t.goals {
			if t.CompletedOn(g.ID, date) {
				s.CompletedGoals++
			}
		}
		if s.TotalGoals > 0 {
			s.Percentage = float64(s.CompletedGoals) / float64(s.TotalGoals) * 100
		}
		days = append(days, s)
	}
	return days
}

func lastSevenDays(today time.Time) []time.Time {
	days := make([]time.Time, 0, 7)
	for i := 6; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

func (t *Tracker) saveGoals(ctx context.Context) {
	if err := storage.SaveList(ctx, t.kv, constants.KeyGoals, t.goals); err != nil {
		logger.Error("Failed to persist goals", "key", constants.KeyGoals, "error", err)
	}
}

func (t *Tracker) saveProgress(ctx context.Context) {
	if err := storage.SaveList(ctx, t.kv, constants.KeyGoalProgress, t.progress); err != nil {
		logger.Error("Failed to persist goal progress", "key", constants.KeyGoalProgress, "error", err)
	}
}
