package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/routine/internal/logger"
	"github.com/julianstephens/routine/internal/notifier"
)

// newSender is replaced in tests.
var newSender = func() notifier.Sender { return notifier.New() }

// NotifyCmd delivers the reminders due this minute. It is meant to run once
// a minute from cron or launchd.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
	Reset  bool `help:"Cancel every registered reminder and exit."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	if c.Reset {
		return resetReminders(ctx)
	}
	if !ctx.Config.Reminders.Enabled {
		if c.DryRun {
			fmt.Fprintln(ctx.Out, "Reminders are disabled in the configuration.")
		}
		return nil
	}

	due := ctx.Reminders.Due(context.Background(), timeNow())
	if len(due) == 0 {
		if c.DryRun {
			fmt.Fprintln(ctx.Out, "No reminders due.")
		}
		return nil
	}

	if c.DryRun {
		for _, reg := range due {
			fmt.Fprintf(ctx.Out, "[DryRun] %s: %s\n", reg.Content.Title, reg.Content.Body)
		}
		return nil
	}

	delivered, err := notifier.Deliver(context.Background(), newSender(), due)
	logger.Debug("Reminders delivered", "due", len(due), "delivered", delivered)
	if err != nil {
		return fmt.Errorf("failed to send %d of %d notifications: %w", len(due)-delivered, len(due), err)
	}
	return nil
}

func resetReminders(ctx *Context) error {
	n := len(ctx.Reminders.List(context.Background()))
	if err := ctx.Reminders.CancelAll(context.Background()); err != nil {
		return fmt.Errorf("failed to cancel reminders: %w", err)
	}
	fmt.Fprintf(ctx.Out, "Cancelled %d reminders\n", n)
	return nil
}
