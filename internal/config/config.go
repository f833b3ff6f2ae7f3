package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/julianstephens/routine/internal/constants"
)

// StorageConfig selects and locates the key-value backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	DSN     string `mapstructure:"dsn" yaml:"dsn"`
}

type RemindersConfig struct {
	Enabled     bool `mapstructure:"enabled" yaml:"enabled"`
	LeadMinutes int  `mapstructure:"lead_minutes" yaml:"lead_minutes"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// Config is the top-level application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Reminders RemindersConfig `mapstructure:"reminders" yaml:"reminders"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`

	// File is the path the configuration was read from.
	File string `mapstructure:"-" yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: constants.BackendSQLite,
			Path:    constants.DefaultDBPath,
		},
		Reminders: RemindersConfig{
			Enabled:     true,
			LeadMinutes: constants.DefaultReminderLeadMin,
		},
		File: constants.DefaultConfigFile,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("reminders.enabled", d.Reminders.Enabled)
	v.SetDefault("reminders.lead_minutes", d.Reminders.LeadMinutes)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Load reads the YAML file at path (the default location when empty) and
// applies ROUTINE_* environment overrides, e.g. ROUTINE_STORAGE_BACKEND.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = constants.DefaultConfigFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(expanded)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", expanded, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", expanded, err)
	}
	cfg.File = expanded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names and numeric ranges.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendDiskv, constants.BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s, %s or %s)", c.Storage.Backend,
			constants.BackendSQLite, constants.BackendDiskv, constants.BackendPostgres)
	}
	if c.Reminders.LeadMinutes < 1 || c.Reminders.LeadMinutes >= constants.MinutesPerDay {
		return fmt.Errorf("reminders.lead_minutes must be between 1 and %d", constants.MinutesPerDay-1)
	}
	return nil
}

// StoragePath returns the storage path with ~ expanded.
func (c *Config) StoragePath() (string, error) {
	return homedir.Expand(c.Storage.Path)
}

// Dir returns the directory holding the config file, which also holds logs
// and backups.
func (c *Config) Dir() string {
	if c.File != "" {
		if p, err := homedir.Expand(c.File); err == nil {
			return filepath.Dir(p)
		}
	}
	dir, err := homedir.Expand(constants.DefaultConfigDir)
	if err != nil {
		return "."
	}
	return dir
}

// Save writes cfg to path as YAML, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expanding config path %s: %w", path, err)
	}
	dir := filepath.Dir(expanded)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(expanded)
	v.SetConfigType("yaml")
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("storage.dsn", cfg.Storage.DSN)
	v.Set("reminders.enabled", cfg.Reminders.Enabled)
	v.Set("reminders.lead_minutes", cfg.Reminders.LeadMinutes)
	v.Set("log.debug", cfg.Log.Debug)

	if err := v.WriteConfigAs(expanded); err != nil {
		return fmt.Errorf("writing config to %s: %w", expanded, err)
	}
	return nil
}
