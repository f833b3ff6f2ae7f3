package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/routine/internal/models"
)

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Create a goal."`
	List   GoalListCmd   `cmd:"" help:"List goals with their progress."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a goal and its progress."`
	Mark   GoalMarkCmd   `cmd:"" help:"Toggle a goal's completion for a day."`
	Stats  GoalStatsCmd  `cmd:"" help:"Show a goal's statistics and the last seven days."`
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Description string `short:"d" help:"Longer description."`
	Target      int    `short:"t" help:"Target number of days." default:"30"`
	Category    string `short:"c" help:"Category (health|career|personal|learning|other)." default:"other"`
}

func (c *GoalAddCmd) Validate() error {
	if c.Target <= 0 {
		return fmt.Errorf("target must be greater than zero")
	}
	_, err := models.ParseGoalCategory(c.Category)
	return err
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	g, err := ctx.Goals.Create(context.Background(), c.Title, c.Description, c.Target, models.GoalCategory(c.Category))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Added goal: %s (ID: %d, %d days, %s)\n", g.Title, g.ID, g.TargetDays, g.Category)
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *Context) error {
	goals := ctx.Goals.List()
	if len(goals) == 0 {
		fmt.Fprintln(ctx.Out, "No goals found")
		return nil
	}

	today := timeNow()
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.AddRow("ID", "TITLE", "CATEGORY", "PROGRESS", "STREAK")
	totalDays := 0
	totalPct := 0.0
	for _, g := range goals {
		s := ctx.Goals.Stats(g.ID, today)
		totalDays += s.CompletedDays
		totalPct += s.Percentage
		tbl.AddRow(g.ID, g.Title, g.Category,
			fmt.Sprintf("%d/%d (%.0f%%)", s.CompletedDays, g.TargetDays, s.Percentage),
			fmt.Sprintf("%d days", s.Streak))
	}
	fmt.Fprintln(ctx.Out, tbl)

	fmt.Fprintf(ctx.Out, "\n%d active goals, %d days completed, average progress %.0f%%\n",
		len(goals), totalDays, math.Round(totalPct/float64(len(goals))))

	var week strings.Builder
	for _, d := range ctx.Goals.OverallWeekly(today) {
		fmt.Fprintf(&week, "  %s %d/%d", d.Weekday.String()[:3], d.CompletedGoals, d.TotalGoals)
	}
	fmt.Fprintf(ctx.Out, "This week:%s\n", week.String())
	return nil
}

type GoalDeleteCmd struct {
	ID int64 `arg:"" help:"Goal id."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	g, _ := ctx.Goals.Get(c.ID)
	if err := ctx.Goals.Delete(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted goal: %s (ID: %d)\n", g.Title, c.ID)
	return nil
}

type GoalMarkCmd struct {
	ID   int64  `arg:"" help:"Goal id."`
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *GoalMarkCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date)
	if err != nil {
		return err
	}
	row, err := ctx.Goals.ToggleProgress(context.Background(), c.ID, date)
	if err != nil {
		return err
	}
	state := "not completed"
	if row.Completed {
		state = "completed"
	}
	fmt.Fprintf(ctx.Out, "Marked goal %d %s on %s\n", c.ID, state, date)
	return nil
}

type GoalStatsCmd struct {
	ID int64 `arg:"" help:"Goal id."`
}

func (c *GoalStatsCmd) Run(ctx *Context) error {
	g, ok := ctx.Goals.Get(c.ID)
	if !ok {
		return fmt.Errorf("no goal with id %d", c.ID)
	}

	today := timeNow()
	s := ctx.Goals.Stats(g.ID, today)
	fmt.Fprintf(ctx.Out, "%s (%s)\n", g.Title, g.Category)
	if g.Description != "" {
		fmt.Fprintf(ctx.Out, "  %s\n", g.Description)
	}
	fmt.Fprintf(ctx.Out, "  Completed: %d of %d target days (%.1f%%)\n", s.CompletedDays, g.TargetDays, s.Percentage)
	fmt.Fprintf(ctx.Out, "  Streak:    %d days\n", s.Streak)

	var week strings.Builder
	for _, d := range ctx.Goals.Weekly(g.ID, today) {
		mark := "·"
		if d.Completed {
			mark = "✓"
		}
		fmt.Fprintf(&week, " %s %s", d.Weekday.String()[:3], mark)
	}
	fmt.Fprintf(ctx.Out, "  Last 7:   %s\n", strings.TrimSpace(week.String()))
	return nil
}
