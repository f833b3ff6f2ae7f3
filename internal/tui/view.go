package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routine/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDay:
		content = docStyle.Render(m.timeline.View())
	case StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(models.WeekDays))
	for i, d := range models.WeekDays {
		label := d.Label()[:3]
		switch {
		case i == m.day && m.state != StateWeek:
			tabs = append(tabs, activeTabStyle.Render(label))
		case i == m.today:
			tabs = append(tabs, todayTabStyle.Render(label))
		default:
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	week := inactiveTabStyle.Render("Week")
	if m.state == StateWeek {
		week = activeTabStyle.Render("Week")
	}
	tabs = append(tabs, week)
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return dangerStyle.Render(m.status)
	}
	return successStyle.Render(m.status)
}

func (m Model) viewConfirmDelete() string {
	title := ""
	if m.toDelete != nil {
		title = m.toDelete.Title + " (" + m.toDelete.Day.Label() + " " + m.toDelete.TimeRange() + ")"
	}
	return lipgloss.Place(m.width, max(m.height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this activity?"),
			title,
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
