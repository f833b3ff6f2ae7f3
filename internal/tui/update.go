package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routine/internal/tui/components/timeline"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		// header, status line, help and padding
		bodyHeight := max(size.Height-8, 1)
		m.timeline.SetSize(size.Width-4, bodyHeight)
		m.weekModel.SetSize(size.Width-4, bodyHeight)
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateEditing(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case timeline.AddActivityMsg:
		return m, m.openForm(nil)
	case timeline.EditActivityMsg:
		a := msg.Activity
		return m, m.openForm(&a)
	case timeline.DeleteActivityMsg:
		a := msg.Activity
		m.toDelete = &a
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			if m.state == StateDay {
				m.state = StateWeek
			} else {
				m.state = StateDay
			}
			return m, nil
		case key.Matches(msg, m.keys.Left):
			m.showDay(m.day - 1)
			return m, nil
		case key.Matches(msg, m.keys.Right):
			m.showDay(m.day + 1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.showDay(m.today)
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.state == StateWeek {
		m.weekModel, cmd = m.weekModel.Update(msg)
	} else {
		m.timeline, cmd = m.timeline.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.completeForm()
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// completeForm saves the submitted form and returns to the view it was
// opened from.
func (m *Model) completeForm() {
	if err := m.saveActivity(*m.activityForm); err != nil {
		m.setError(err)
	}
	m.state = m.previousState
	m.form = nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.toDelete != nil {
			m.deleteActivity(*m.toDelete)
		}
		m.toDelete = nil
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.Cancel), key.Matches(keyMsg, m.keys.Quit):
		m.toDelete = nil
		m.state = m.previousState
	}
	return m, nil
}
