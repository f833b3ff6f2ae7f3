package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/routine/internal/cli"
	"github.com/julianstephens/routine/internal/config"
	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/errors"
	"github.com/julianstephens/routine/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/routine/config.yaml"`
	Verbose bool   `short:"v" help:"Log debug output to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Write the configuration and initialize storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Activity cli.ActivityCmd `cmd:"" help:"Manage weekly activities."`
	Day      cli.DayCmd      `cmd:"" help:"Show one day's timeline."`
	Goal     cli.GoalCmd     `cmd:"" help:"Manage goals and daily progress."`
	Journal  cli.JournalCmd  `cmd:"" help:"Write and review journal entries."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Notify   cli.NotifyCmd   `cmd:"" hidden:"" help:"Deliver due reminders (run every minute from cron)."`
}

// commands that open storage themselves or never need it
var noStoreCommands = []string{"init", "keyring", "doctor"}

func needsStore(command string) bool {
	for _, prefix := range noStoreCommands {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly routine planner with reminders, goals and a journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
	if CLI.Verbose {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, ConfigDir: cfg.Dir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := cli.NewContext(cfg)
	if needsStore(kctx.Command()) {
		if err := appCtx.Open(context.Background()); err != nil {
			errors.Fatal(err)
		}
	}

	err = kctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}
