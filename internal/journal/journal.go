package journal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/logger"
	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/storage"
	"github.com/julianstephens/routine/internal/utils"
)

var (
	ErrContentRequired = errors.New("journal entry cannot be empty")
	ErrInvalidScore    = fmt.Errorf("discipline score must be between %d and %d", constants.MinDisciplineScore, constants.MaxDisciplineScore)
	ErrNotFound        = errors.New("no journal entry for that date")
)

// Stats summarizes the journal.
type Stats struct {
	TotalEntries int
	// AverageScore is rounded to one decimal; zero without entries.
	AverageScore float64
	Streak       int
}

// Journal stores at most one entry per calendar date.
type Journal struct {
	kv      storage.KV
	now     func() time.Time
	entries map[string]models.JournalEntry
}

func New(kv storage.KV) *Journal {
	return &Journal{
		kv:      kv,
		now:     time.Now,
		entries: map[string]models.JournalEntry{},
	}
}

// Load reads every entry from storage.
func (j *Journal) Load(ctx context.Context) {
	entries, ok := storage.LoadValue[map[string]models.JournalEntry](ctx, j.kv, constants.KeyJournal)
	if !ok || entries == nil {
		entries = map[string]models.JournalEntry{}
	}
	j.entries = entries
}

// Save writes the entry for date, replacing any existing one. A score of
// zero means the default of 5.
func (j *Journal) Save(ctx context.Context, date, content string, score int) (models.JournalEntry, error) {
	if _, err := utils.ParseDate(date, time.UTC); err != nil {
		return models.JournalEntry{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.JournalEntry{}, ErrContentRequired
	}
	if score == 0 {
		score = constants.DefaultDisciplineScore
	}
	if score < constants.MinDisciplineScore || score > constants.MaxDisciplineScore {
		return models.JournalEntry{}, ErrInvalidScore
	}

	e := models.JournalEntry{
		Date:            date,
		Content:         content,
		DisciplineScore: score,
		Timestamp:       j.now().UnixMilli(),
	}
	j.entries[date] = e
	j.persist(ctx)
	return e, nil
}

func (j *Journal) Get(date string) (models.JournalEntry, bool) {
	e, ok := j.entries[date]
	return e, ok
}

func (j *Journal) Delete(ctx context.Context, date string) error {
	if _, ok := j.entries[date]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	delete(j.entries, date)
	j.persist(ctx)
	return nil
}

// List returns every entry, newest date first.
func (j *Journal) List() []models.JournalEntry {
	list := make([]models.JournalEntry, 0, len(j.entries))
	for _, e := range j.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(a, b int) bool {
		return list[a].Date > list[b].Date
	})
	return list
}

func (j *Journal) Stats(today time.Time) Stats {
	s := Stats{TotalEntries: len(j.entries)}
	if s.TotalEntries == 0 {
		return s
	}

	dates := make([]string, 0, len(j.entries))
	total := 0
	for date, e := range j.entries {
		dates = append(dates, date)
		total += e.DisciplineScore
	}
	s.AverageScore = math.Round(float64(total)/float64(s.TotalEntries)*10) / 10
	s.Streak = utils.Streak(dates, today)
	return s
}

func (j *Journal) persist(ctx context.Context) {
	if err := storage.SaveValue(ctx, j.kv, constants.KeyJournal, j.entries); err != nil {
		logger.Error("Failed to persist journal", "key", constants.KeyJournal, "error", err)
	}
}
