package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/keyring"
	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/scheduler"
	"github.com/julianstephens/routine/internal/storage"
	"github.com/julianstephens/routine/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n", name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Fprintf(ctx.Out, "✓ %s: OK\n", name)
	}
	warn := func(name string, err error) {
		if err != nil {
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n", name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
			return
		}
		fmt.Fprintf(ctx.Out, "✓ %s: OK\n", name)
	}

	report("Configuration", ctx.Config.Validate())

	reachable := ctx.Store != nil
	if !reachable {
		err := ctx.Open(context.Background())
		reachable = err == nil
		report("Storage reachable", err)
	} else {
		report("Storage reachable", checkStoreReadable(ctx.Store))
	}

	if reachable {
		if s, ok := ctx.Store.(*sqlite.Store); ok {
			report("Schema version", checkSchemaVersion(s))
		}
		report("Activity data", checkActivities(ctx.Scheduler.Activities()))
	} else {
		fmt.Fprintln(ctx.Out, "⊘ Activity data: SKIPPED (storage not reachable)")
	}

	switch ctx.Config.Storage.Backend {
	case constants.BackendSQLite:
		warn("Backups present", checkBackupsPresent(ctx))
	case constants.BackendPostgres:
		warn("OS keyring", checkKeyring())
	}

	report("Clock/timezone", checkClockTimezone(ctx))

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkStoreReadable(kv storage.KV) error {
	_, err := kv.Get(context.Background(), constants.KeyActivities)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read activities: %w", err)
	}
	return nil
}

func checkSchemaVersion(s *sqlite.Store) error {
	current, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest := sqlite.LatestSchemaVersion()
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkActivities verifies the stored list: unique ids, valid fields and no
// same-day overlaps.
func checkActivities(activities []models.Activity) error {
	seen := make(map[int64]bool, len(activities))
	for _, a := range activities {
		if seen[a.ID] {
			return fmt.Errorf("duplicate activity ID found: %d", a.ID)
		}
		seen[a.ID] = true

		if err := a.Validate(); err != nil {
			return fmt.Errorf("activity %d: %w", a.ID, err)
		}
		if a.End() <= a.Start() {
			return fmt.Errorf("activity %d: %w", a.ID, scheduler.ErrInvalidTime)
		}
		if scheduler.HasCollision(a, activities, a.ID) {
			return fmt.Errorf("activity %d (%s %s) overlaps another activity", a.ID, a.Day.Label(), a.TimeRange())
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'routine backup create'")
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := timeNow()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		fmt.Fprintln(ctx.Out, "   Note: timezone is UTC")
	}
	return nil
}
