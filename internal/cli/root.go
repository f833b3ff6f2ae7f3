package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/routine/internal/backup"
	"github.com/julianstephens/routine/internal/config"
	"github.com/julianstephens/routine/internal/constants"
	"github.com/julianstephens/routine/internal/goals"
	"github.com/julianstephens/routine/internal/journal"
	"github.com/julianstephens/routine/internal/keyring"
	"github.com/julianstephens/routine/internal/logger"
	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/reminder"
	"github.com/julianstephens/routine/internal/scheduler"
	"github.com/julianstephens/routine/internal/storage"
	"github.com/julianstephens/routine/internal/storage/diskv"
	"github.com/julianstephens/routine/internal/storage/postgres"
	"github.com/julianstephens/routine/internal/storage/sqlite"
	"github.com/julianstephens/routine/internal/utils"
)

// timeNow is replaced in tests.
var timeNow = time.Now

// Context is handed to every command's Run method. Open wires one instance
// of each domain service over a single KV backend.
type Context struct {
	Config    *config.Config
	Store     storage.KV
	Scheduler *scheduler.Scheduler
	Goals     *goals.Tracker
	Journal   *journal.Journal
	Reminders *reminder.Registry
	Out       io.Writer
}

// NewContext returns a Context for cfg; call Open before running a command
// that needs storage.
func NewContext(cfg *config.Config) *Context {
	return &Context{Config: cfg, Out: os.Stdout}
}

// Open connects the configured backend and loads every service from it.
func (c *Context) Open(ctx context.Context) error {
	kv, err := OpenStore(ctx, c.Config)
	if err != nil {
		return err
	}
	c.Attach(ctx, kv)
	return nil
}

// Attach wires the services over kv and loads their state.
func (c *Context) Attach(ctx context.Context, kv storage.KV) {
	c.Store = kv
	c.Reminders = reminder.NewRegistry(kv, c.Config.Reminders.Enabled)
	binding := reminder.NewBinding(c.Reminders, c.Config.Reminders.LeadMinutes)
	c.Scheduler = scheduler.New(kv, binding)
	c.Goals = goals.NewTracker(kv)
	c.Journal = journal.New(kv)

	c.Scheduler.Load(ctx)
	c.Goals.Load(ctx)
	c.Journal.Load(ctx)
}

// Close releases the backend. It is safe to call more than once.
func (c *Context) Close() error {
	if c.Store == nil {
		return nil
	}
	err := c.Store.Close()
	c.Store = nil
	return err
}

// OpenStore opens the KV backend selected by cfg.Storage.Backend.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case constants.BackendSQLite:
		path, err := cfg.StoragePath()
		if err != nil {
			return nil, err
		}
		return sqlite.Open(path)
	case constants.BackendDiskv:
		path, err := cfg.StoragePath()
		if err != nil {
			return nil, err
		}
		return diskv.Open(path)
	case constants.BackendPostgres:
		if cfg.Storage.DSN != "" {
			if _, err := postgres.ValidateConnString(cfg.Storage.DSN); err != nil {
				return nil, fmt.Errorf("storage.dsn: %w", err)
			}
		}
		connStr, err := keyring.ResolveConnectionString(cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.Open(ctx, connStr)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// BackupManager returns the backup manager for the sqlite database, or
// backup.ErrUnsupported for the other backends.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if c.Config.Storage.Backend != constants.BackendSQLite {
		return nil, backup.ErrUnsupported
	}
	path, err := c.Config.StoragePath()
	if err != nil {
		return nil, err
	}
	return backup.NewManager(path), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// GoalTitle returns the title of the goal an activity links to, or "".
func (c *Context) GoalTitle(a models.Activity) string {
	if a.GoalID == nil || c.Goals == nil {
		return ""
	}
	if g, ok := c.Goals.Get(*a.GoalID); ok {
		return g.Title
	}
	return ""
}

// ParseDate accepts YYYY-MM-DD, "today" or "yesterday".
func ParseDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return utils.Today(timeNow()), nil
	case "yesterday":
		return utils.Today(timeNow().AddDate(0, 0, -1)), nil
	}
	if _, err := utils.ParseDate(s, time.UTC); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD, 'today' or 'yesterday': %w", err)
	}
	return s, nil
}

// ParseGoalID parses a goal id argument; an empty string means no goal.
func (c *Context) ParseGoalID(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var id int64
	if _, err := fmt.Sscan(s, &id); err != nil {
		return nil, fmt.Errorf("invalid goal id: %s", s)
	}
	if _, ok := c.Goals.Get(id); !ok {
		return nil, fmt.Errorf("no goal with id %d", id)
	}
	return &id, nil
}
