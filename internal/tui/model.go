package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/routine/internal/errors"
	"github.com/julianstephens/routine/internal/goals"
	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/scheduler"
	"github.com/julianstephens/routine/internal/tui/components/timeline"
	"github.com/julianstephens/routine/internal/tui/components/week"
	"github.com/julianstephens/routine/internal/utils"
)

type SessionState int

const (
	StateDay SessionState = iota
	StateWeek
	StateEditing
	StateConfirmDelete
)

// ActivityFormModel holds the form fields as typed by the user.
type ActivityFormModel struct {
	Title string
	Day   models.Weekday
	Start string
	End   string
	// Goal is the goal id as a string; empty means no goal.
	Goal string
}

type Model struct {
	scheduler     *scheduler.Scheduler
	goals         *goals.Tracker
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	day           int
	today         int
	timeline      timeline.Model
	weekModel     week.Model
	form          *huh.Form
	activityForm  *ActivityFormModel
	editing       *models.Activity
	toDelete      *models.Activity
	status        string
	statusIsError bool
	quitting      bool
	width         int
	height        int
}

// NewModel opens on today's weekday. tracker may be nil, which hides goal
// links.
func NewModel(sched *scheduler.Scheduler, tracker *goals.Tracker, today models.Weekday) Model {
	idx := max(slices.Index(models.WeekDays, today), 0)
	m := Model{
		scheduler: sched,
		goals:     tracker,
		state:     StateDay,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		day:       idx,
		today:     idx,
		timeline:  timeline.New(nil, 0, 0),
		weekModel: week.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// ShortHelp adds the row actions while the day view is showing.
func (m Model) ShortHelp() []key.Binding {
	keys := m.keys.ShortHelp()
	if m.state == StateDay {
		keys = append(keys, m.timeline.ShortHelp()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// CurrentDay returns the weekday being shown.
func (m Model) CurrentDay() models.Weekday {
	return models.WeekDays[m.day]
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusIsError
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	m.status = apperrors.UserMessage(err)
	m.statusIsError = true
}

func (m Model) goalTitle(a models.Activity) string {
	if a.GoalID == nil || m.goals == nil {
		return ""
	}
	if g, ok := m.goals.Get(*a.GoalID); ok {
		return g.Title
	}
	return ""
}

// refresh rebuilds both views from the scheduler.
func (m *Model) refresh() {
	byDay := make(map[models.Weekday][]models.Activity, len(models.WeekDays))
	for _, d := range models.WeekDays {
		byDay[d] = m.scheduler.ActivitiesForDay(d)
	}
	m.weekModel.SetWeek(byDay)

	activities := byDay[m.CurrentDay()]
	items := make([]timeline.Item, len(activities))
	for i, a := range activities {
		items[i] = timeline.Item{Activity: a, GoalTitle: m.goalTitle(a)}
	}
	m.timeline.SetItems(items)
}

func (m *Model) showDay(idx int) {
	m.day = (idx + len(models.WeekDays)) % len(models.WeekDays)
	m.refresh()
}

// openForm starts the add form, or the edit form when a is non-nil.
func (m *Model) openForm(a *models.Activity) tea.Cmd {
	fm := &ActivityFormModel{Day: m.CurrentDay(), Start: "09:00", End: "10:00"}
	if a != nil {
		fm = &ActivityFormModel{
			Title: a.Title,
			Day:   a.Day,
			Start: utils.FormatClock(a.StartHour, a.StartMinute),
			End:   utils.FormatClock(a.EndHour, a.EndMinute),
		}
		if a.GoalID != nil {
			fm.Goal = strconv.FormatInt(*a.GoalID, 10)
		}
	}

	var goalList []models.Goal
	if m.goals != nil {
		goalList = m.goals.List()
	}

	m.editing = a
	m.activityForm = fm
	m.form = NewActivityForm(fm, goalList)
	m.previousState = m.state
	m.state = StateEditing
	return m.form.Init()
}

// saveActivity applies the form through the scheduler. Rejections leave the
// list untouched and are reported in the status line.
func (m *Model) saveActivity(fm ActivityFormModel) error {
	sh, sm, err := utils.ParseClock(fm.Start)
	if err != nil {
		return err
	}
	eh, em, err := utils.ParseClock(fm.End)
	if err != nil {
		return err
	}

	var a models.Activity
	if m.editing != nil {
		a = *m.editing
	}
	a.Title = fm.Title
	a.Day = fm.Day
	a = a.WithInterval(utils.ToMinutes(sh, sm), utils.ToMinutes(eh, em))
	a.GoalID = nil
	if fm.Goal != "" {
		id, err := strconv.ParseInt(fm.Goal, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid goal id: %s", fm.Goal)
		}
		a.GoalID = &id
	}

	var saved models.Activity
	if m.editing != nil {
		saved, err = m.scheduler.Update(context.Background(), a)
	} else {
		saved, err = m.scheduler.Add(context.Background(), a)
	}
	if err != nil {
		return err
	}

	m.day = max(slices.Index(models.WeekDays, saved.Day), 0)
	m.setStatus(fmt.Sprintf("Saved %s (%s %s)", saved.Title, saved.Day.Label(), saved.TimeRange()))
	m.refresh()
	return nil
}

func (m *Model) deleteActivity(a models.Activity) {
	if err := m.scheduler.Delete(context.Background(), a.ID); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Deleted " + a.Title)
	m.refresh()
}
