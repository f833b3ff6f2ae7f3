package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/scheduler"
	"github.com/julianstephens/routine/internal/utils"
)

type ActivityCmd struct {
	Add    ActivityAddCmd    `cmd:"" help:"Add a weekly activity."`
	Edit   ActivityEditCmd   `cmd:"" help:"Edit an existing activity."`
	Delete ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
	List   ActivityListCmd   `cmd:"" help:"List the whole week."`
	Day    DayCmd            `cmd:"" help:"Show one day's timeline."`
}

type ActivityAddCmd struct {
	Title string `arg:"" help:"Activity title."`
	Day   string `short:"D" help:"Weekday (monday..sunday, mon..sun or 0-6 with 0=Sunday)." required:""`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM)." required:""`
	Goal  string `short:"g" help:"Goal id this activity contributes to."`
}

func (c *ActivityAddCmd) Validate() error {
	if _, err := models.ParseWeekday(c.Day); err != nil {
		return err
	}
	if !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time format (expected HH:MM): %s", c.Start)
	}
	if !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time format (expected HH:MM): %s", c.End)
	}
	return nil
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	day, _ := models.ParseWeekday(c.Day)
	sh, sm, _ := utils.ParseClock(c.Start)
	eh, em, _ := utils.ParseClock(c.End)

	goalID, err := ctx.ParseGoalID(c.Goal)
	if err != nil {
		return err
	}

	added, err := ctx.Scheduler.Add(context.Background(), models.Activity{
		Title:       c.Title,
		Day:         day,
		StartHour:   sh,
		StartMinute: sm,
		EndHour:     eh,
		EndMinute:   em,
		GoalID:      goalID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Added activity: %s (ID: %d)\n", added.Title, added.ID)
	fmt.Fprintf(ctx.Out, "  %s %s (%s)\n", added.Day.Label(), added.TimeRange(), added.DurationLabel())
	if !added.HasReminder() {
		fmt.Fprintln(ctx.Out, "  No reminder scheduled.")
	}
	return nil
}

type ActivityEditCmd struct {
	ID        int64  `arg:"" help:"Activity id."`
	Title     string `help:"New title."`
	Day       string `short:"D" help:"New weekday."`
	Start     string `short:"s" help:"New start time (HH:MM)."`
	End       string `short:"e" help:"New end time (HH:MM)."`
	Goal      string `short:"g" help:"Link to this goal id."`
	ClearGoal bool   `help:"Remove the goal link."`
}

func (c *ActivityEditCmd) Validate() error {
	if c.Day != "" {
		if _, err := models.ParseWeekday(c.Day); err != nil {
			return err
		}
	}
	if c.Start != "" && !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time format (expected HH:MM): %s", c.Start)
	}
	if c.End != "" && !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time format (expected HH:MM): %s", c.End)
	}
	if c.Goal != "" && c.ClearGoal {
		return fmt.Errorf("--goal and --clear-goal are mutually exclusive")
	}
	return nil
}

func (c *ActivityEditCmd) Run(ctx *Context) error {
	a, ok := ctx.Scheduler.Get(c.ID)
	if !ok {
		return fmt.Errorf("%w: %d", scheduler.ErrNotFound, c.ID)
	}

	if c.Title != "" {
		a.Title = c.Title
	}
	if c.Day != "" {
		a.Day, _ = models.ParseWeekday(c.Day)
	}
	if c.Start != "" {
		a.StartHour, a.StartMinute, _ = utils.ParseClock(c.Start)
	}
	if c.End != "" {
		a.EndHour, a.EndMinute, _ = utils.ParseClock(c.End)
	}
	switch {
	case c.ClearGoal:
		a.GoalID = nil
	case c.Goal != "":
		goalID, err := ctx.ParseGoalID(c.Goal)
		if err != nil {
			return err
		}
		a.GoalID = goalID
	}

	updated, err := ctx.Scheduler.Update(context.Background(), a)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Updated activity: %s (ID: %d)\n", updated.Title, updated.ID)
	fmt.Fprintf(ctx.Out, "  %s %s (%s)\n", updated.Day.Label(), updated.TimeRange(), updated.DurationLabel())
	return nil
}

type ActivityDeleteCmd struct {
	ID int64 `arg:"" help:"Activity id."`
}

func (c *ActivityDeleteCmd) Run(ctx *Context) error {
	a, _ := ctx.Scheduler.Get(c.ID)
	if err := ctx.Scheduler.Delete(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted activity: %s (ID: %d)\n", a.Title, c.ID)
	return nil
}

type ActivityListCmd struct {
	Day string `short:"D" help:"Only show this weekday."`
}

func (c *ActivityListCmd) Validate() error {
	if c.Day == "" {
		return nil
	}
	_, err := models.ParseWeekday(c.Day)
	return err
}

func (c *ActivityListCmd) Run(ctx *Context) error {
	days := models.WeekDays
	if c.Day != "" {
		d, _ := models.ParseWeekday(c.Day)
		days = []models.Weekday{d}
	}

	var rows []models.Activity
	for _, d := range days {
		rows = append(rows, ctx.Scheduler.ActivitiesForDay(d)...)
	}
	if len(rows) == 0 {
		fmt.Fprintln(ctx.Out, "No activities found")
		return nil
	}

	fmt.Fprintln(ctx.Out, activityTable(ctx, rows, true))
	return nil
}

type DayCmd struct {
	Day  string `arg:"" optional:"" help:"Weekday to show (defaults to today)."`
	Free bool   `short:"f" help:"Also list the free blocks of the day."`
	From string `help:"Start of the day for free blocks (HH:MM)." default:"06:00"`
	To   string `help:"End of the day for free blocks (HH:MM)." default:"22:00"`
}

func (c *DayCmd) Validate() error {
	if c.Day != "" {
		if _, err := models.ParseWeekday(c.Day); err != nil {
			return err
		}
	}
	from, err := utils.ParseTimeToMinutes(c.From)
	if err != nil {
		return err
	}
	to, err := utils.ParseTimeToMinutes(c.To)
	if err != nil {
		return err
	}
	if from >= to {
		return fmt.Errorf("--from must be before --to")
	}
	return nil
}

func (c *DayCmd) Run(ctx *Context) error {
	day := models.WeekdayOf(timeNow())
	if c.Day != "" {
		day, _ = models.ParseWeekday(c.Day)
	}

	activities := ctx.Scheduler.ActivitiesForDay(day)
	fmt.Fprintf(ctx.Out, "%s:\n\n", day.Label())
	if len(activities) == 0 {
		fmt.Fprintln(ctx.Out, "  No activities scheduled")
	} else {
		fmt.Fprintln(ctx.Out, activityTable(ctx, activities, false))
	}

	if !c.Free {
		return nil
	}
	from, _ := utils.ParseTimeToMinutes(c.From)
	to, _ := utils.ParseTimeToMinutes(c.To)
	blocks := scheduler.FreeBlocks(day, activities, from, to)

	fmt.Fprintln(ctx.Out)
	if len(blocks) == 0 {
		fmt.Fprintln(ctx.Out, "No free time between "+c.From+" and "+c.To)
		return nil
	}
	fmt.Fprintln(ctx.Out, "Free:")
	for _, b := range blocks {
		fmt.Fprintf(ctx.Out, "  %s (%dm)\n", b, b.End-b.Start)
	}
	return nil
}

func activityTable(ctx *Context, activities []models.Activity, withDay bool) *uitable.Table {
	tbl := uitable.New()
	tbl.MaxColWidth = 40
	header := []interface{}{"ID", "TIME", "DURATION", "TITLE", "GOAL", "REMINDER"}
	if withDay {
		header = slices.Insert(header, 1, interface{}("DAY"))
	}
	tbl.AddRow(header...)

	for _, a := range activities {
		reminder := "-"
		if a.HasReminder() {
			reminder = "on"
		}
		row := []interface{}{a.ID, a.TimeRange(), a.DurationLabel(), a.Title, ctx.GoalTitle(a), reminder}
		if withDay {
			row = slices.Insert(row, 1, interface{}(a.Day.Label()))
		}
		tbl.AddRow(row...)
	}
	return tbl
}
