package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/julianstephens/routine/internal/config"
	"github.com/julianstephens/routine/internal/constants"
)

type InitCmd struct {
	Force   bool   `help:"Overwrite an existing configuration file."`
	Backend string `help:"Storage backend (sqlite|diskv|postgres)."`
	Path    string `help:"Database file (sqlite) or data directory (diskv)."`
	DSN     string `help:"PostgreSQL connection string without a password."`
}

func (c *InitCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Backend != "" {
		cfg.Storage.Backend = c.Backend
		if c.Backend == constants.BackendDiskv && c.Path == "" {
			cfg.Storage.Path = constants.DefaultConfigDir + "/data"
		}
	}
	if c.Path != "" {
		cfg.Storage.Path = c.Path
	}
	if c.DSN != "" {
		cfg.Storage.DSN = c.DSN
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.File); err == nil && !c.Force {
		fmt.Fprintf(ctx.Out, "Configuration already exists at: %s (use --force to overwrite)\n", cfg.File)
	} else {
		if err := config.Save(cfg.File, cfg); err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "Wrote configuration to: %s\n", cfg.File)
	}

	if err := ctx.Open(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Backend, err)
	}
	if !cfg.Reminders.Enabled {
		if err := ctx.Reminders.CancelAll(context.Background()); err != nil {
			return fmt.Errorf("failed to cancel reminders: %w", err)
		}
	}
	where := cfg.Storage.Path
	if cfg.Storage.Backend == constants.BackendPostgres {
		where = "postgres"
	}
	fmt.Fprintf(ctx.Out, "Initialized routine storage at: %s\n", where)
	return nil
}
