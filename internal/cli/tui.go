package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Scheduler, ctx.Goals, models.WeekdayOf(timeNow())), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running the TUI: %w", err)
	}
	return nil
}
