package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rawzone.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
schedule = "0 6 * * *"
overlap = "skip"

[watch]
host = "ftp.example.com"
port = 21
user = "ads"
password_secret = "landing_password"
directory = "/landing/ads"
pattern = "*.csv"
archive_dir = "/landing/ads/archive"
poll_interval = "45s"
stable_seconds = 60
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Schedule != "0 6 * * *" {
		t.Errorf("Schedule = %q", cfg.Schedule)
	}
	if cfg.Overlap != "skip" {
		t.Errorf("Overlap = %q", cfg.Overlap)
	}
	if cfg.Watch == nil {
		t.Fatal("Watch is nil")
	}
	if cfg.Watch.Host != "ftp.example.com" {
		t.Errorf("Watch.Host = %q", cfg.Watch.Host)
	}
	if cfg.Watch.PollInterval.Duration != 45*time.Second {
		t.Errorf("Watch.PollInterval = %v, want 45s", cfg.Watch.PollInterval.Duration)
	}
	if cfg.Watch.StableSeconds != 60 {
		t.Errorf("Watch.StableSeconds = %d, want 60", cfg.Watch.StableSeconds)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
[watch]
poll_interval = "not a duration"
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for bad duration")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error = %q, want it to mention invalid duration", err)
	}
}

func TestValidate(t *testing.T) {
	watch := func() *WatchConfig {
		return &WatchConfig{
			Host:           "ftp.example.com",
			Port:           21,
			User:           "ads",
			PasswordSecret: "landing_password",
			Directory:      "/landing/ads",
			Pattern:        "*.csv",
		}
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string // empty = valid
	}{
		{
			name:    "no trigger",
			cfg:     Config{},
			wantErr: "no trigger configured",
		},
		{
			name: "schedule only",
			cfg:  Config{Schedule: "*/5 * * * *"},
		},
		{
			name: "watch only",
			cfg:  Config{Watch: watch()},
		},
		{
			name:    "bad schedule",
			cfg:     Config{Schedule: "every tuesday"},
			wantErr: "invalid schedule",
		},
		{
			name:    "bad overlap",
			cfg:     Config{Schedule: "@hourly", Overlap: "queue"},
			wantErr: "invalid overlap",
		},
		{
			name: "watch missing host",
			cfg: Config{Watch: func() *WatchConfig {
				w := watch()
				w.Host = ""
				return w
			}()},
			wantErr: "host is required",
		},
		{
			name: "watch bad port",
			cfg: Config{Watch: func() *WatchConfig {
				w := watch()
				w.Port = 70000
				return w
			}()},
			wantErr: "port 70000 out of range",
		},
		{
			name: "watch missing pattern",
			cfg: Config{Watch: func() *WatchConfig {
				w := watch()
				w.Pattern = ""
				return w
			}()},
			wantErr: "pattern is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.cfg.Validate()
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e.Error(), tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want an error containing %q", errs, tt.wantErr)
			}
		})
	}
}

func TestEffectivePollInterval(t *testing.T) {
	w := &WatchConfig{}
	if got := w.EffectivePollInterval(); got != DefaultWatchPollInterval {
		t.Errorf("EffectivePollInterval() = %v, want default %v", got, DefaultWatchPollInterval)
	}

	w.PollInterval.Duration = 10 * time.Second
	if got := w.EffectivePollInterval(); got != 10*time.Second {
		t.Errorf("EffectivePollInterval() = %v, want 10s", got)
	}
}
