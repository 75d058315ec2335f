// Package config parses and validates rawzone.toml, the serve-mode
// configuration describing when the ad_etl trigger fires.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"
)

// DefaultWatchPollInterval is used when [watch] omits poll_interval.
const DefaultWatchPollInterval = 30 * time.Second

// Duration wraps time.Duration for TOML unmarshalling.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	return nil
}

// Config is the top-level structure parsed from a rawzone.toml file.
type Config struct {
	Schedule string       `toml:"schedule"`
	Overlap  string       `toml:"overlap"`
	Watch    *WatchConfig `toml:"watch"`

	path string // unexported: filesystem path of the rawzone.toml
}

// Path returns the filesystem path this config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// WatchConfig defines a landing-zone watch: an FTP directory polled for newly
// arrived raw files, each arrival firing the trigger.
type WatchConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	User           string   `toml:"user"`
	PasswordSecret string   `toml:"password_secret"`
	TLS            bool     `toml:"tls"`
	Directory      string   `toml:"directory"`
	Pattern        string   `toml:"pattern"`
	ArchiveDir     string   `toml:"archive_dir"`
	PollInterval   Duration `toml:"poll_interval"`
	StableSeconds  int      `toml:"stable_seconds"`
}

// Load parses a single rawzone.toml file and returns a Config.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", absPath, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", absPath, err)
	}

	cfg.path = absPath
	return &cfg, nil
}

// Validate checks the config for problems and returns all of them.
func (c *Config) Validate() []error {
	var errs []error

	if c.Schedule == "" && c.Watch == nil {
		errs = append(errs, fmt.Errorf("no trigger configured (set schedule or [watch])"))
	}

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid schedule %q: %w", c.Schedule, err))
		}
	}

	switch c.Overlap {
	case "", "allow", "skip":
	default:
		errs = append(errs, fmt.Errorf("invalid overlap %q (expected \"allow\" or \"skip\")", c.Overlap))
	}

	if c.Watch != nil {
		errs = append(errs, c.Watch.validate()...)
	}

	return errs
}

func (w *WatchConfig) validate() []error {
	var errs []error

	if w.Host == "" {
		errs = append(errs, fmt.Errorf("[watch] host is required"))
	}
	if w.Port <= 0 || w.Port > 65535 {
		errs = append(errs, fmt.Errorf("[watch] port %d out of range", w.Port))
	}
	if w.User == "" {
		errs = append(errs, fmt.Errorf("[watch] user is required"))
	}
	if w.PasswordSecret == "" {
		errs = append(errs, fmt.Errorf("[watch] password_secret is required"))
	}
	if w.Directory == "" {
		errs = append(errs, fmt.Errorf("[watch] directory is required"))
	}
	if w.Pattern == "" {
		errs = append(errs, fmt.Errorf("[watch] pattern is required"))
	}
	if w.PollInterval.Duration < 0 {
		errs = append(errs, fmt.Errorf("[watch] poll_interval must not be negative"))
	}
	if w.StableSeconds < 0 {
		errs = append(errs, fmt.Errorf("[watch] stable_seconds must not be negative"))
	}

	return errs
}

// EffectivePollInterval returns poll_interval or the default when unset.
func (w *WatchConfig) EffectivePollInterval() time.Duration {
	if w.PollInterval.Duration > 0 {
		return w.PollInterval.Duration
	}
	return DefaultWatchPollInterval
}
