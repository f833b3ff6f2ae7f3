package timeline

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routine/internal/models"
)

type AddActivityMsg struct{}

type DeleteActivityMsg struct {
	Activity models.Activity
}

type EditActivityMsg struct {
	Activity models.Activity
}

// Item is one activity row; GoalTitle is resolved by the caller.
type Item struct {
	Activity  models.Activity
	GoalTitle string
}

func (i Item) Title() string {
	return i.Activity.TimeRange() + "  " + i.Activity.Title
}

func (i Item) Description() string {
	parts := []string{i.Activity.DurationLabel()}
	if i.GoalTitle != "" {
		parts = append(parts, "goal: "+i.GoalTitle)
	}
	if i.Activity.HasReminder() {
		parts = append(parts, "⏰ reminder")
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Activity.Title }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Model lists one day's activities in start order.
type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	keys := DefaultKeyMap()
	// h/l and the arrows switch days in the parent model
	l.KeyMap.PrevPage.SetEnabled(false)
	l.KeyMap.NextPage.SetEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// SetItems replaces the rows, keeping the cursor in range.
func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

// Selected returns the highlighted activity.
func (m Model) Selected() (models.Activity, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Activity, true
	}
	return models.Activity{}, false
}

// Index returns the cursor position.
func (m Model) Index() int {
	return m.list.Index()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddActivityMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditActivityMsg{Activity: a} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteActivityMsg{Activity: a} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing scheduled.\n  Press 'a' to add an activity."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// ShortHelp lists the row actions for the global help bar.
func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
}
