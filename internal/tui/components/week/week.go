package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routine/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	durationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model renders every weekday's activities in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	days     map[models.Weekday][]models.Activity
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		days:     make(map[models.Weekday][]models.Activity),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetWeek replaces the activities; each day's slice must already be in
// start order.
func (m *Model) SetWeek(days map[models.Weekday][]models.Activity) {
	m.days = days
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	for _, d := range models.WeekDays {
		activities := m.days[d]
		b.WriteString(dayStyle.Render(d.Label()))
		b.WriteString("\n")
		if len(activities) == 0 {
			b.WriteString(durationStyle.Render("  free all day"))
			b.WriteString("\n\n")
			continue
		}
		for _, a := range activities {
			fmt.Fprintf(&b, "  %s %s %s\n",
				timeStyle.Render(a.TimeRange()),
				titleStyle.Render(a.Title),
				durationStyle.Render(a.DurationLabel()),
			)
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
