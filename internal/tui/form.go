package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/utils"
)

// NewActivityForm builds the add/edit form bound to fm.
func NewActivityForm(fm *ActivityFormModel, goalList []models.Goal) *huh.Form {
	days := make([]huh.Option[models.Weekday], len(models.WeekDays))
	for i, d := range models.WeekDays {
		days[i] = huh.NewOption(d.Label(), d)
	}

	goalOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, g := range goalList {
		goalOptions = append(goalOptions, huh.NewOption(g.Title, strconv.FormatInt(g.ID, 10)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Weekday]().
				Title("Day").
				Options(days...).
				Value(&fm.Day),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start).
				Validate(validateClock),
			huh.NewInput().
				Title("End (HH:MM)").
				Value(&fm.End).
				Validate(validateClock),
			huh.NewSelect[string]().
				Title("Goal").
				Options(goalOptions...).
				Value(&fm.Goal),
		),
	)
}

func validateClock(s string) error {
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}
