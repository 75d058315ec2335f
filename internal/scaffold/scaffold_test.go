package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adlake/rawzone/internal/config"
)

func TestCreate_WritesStarterFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deploy")
	if err := Create(dir); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for _, name := range []string{"rawzone.toml", "secrets.toml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	// The generated config must be loadable and valid as-is
	cfg, err := config.Load(filepath.Join(dir, "rawzone.toml"))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("generated config does not validate: %v", errs)
	}
	if cfg.Watch == nil || cfg.Watch.PasswordSecret == "" {
		t.Error("generated config missing the [watch] example")
	}
}

func TestCreate_SecretsNotWorldReadable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deploy")
	if err := Create(dir); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dir, "secrets.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("secrets.toml mode = %o, want no group/other access", perm)
	}
}

func TestCreate_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rawzone.toml")
	if err := os.WriteFile(path, []byte("schedule = \"@hourly\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Create(dir)
	if err == nil {
		t.Fatal("Create() expected error when files already exist")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %q, want it to mention existing file", err)
	}

	// The pre-existing file must be untouched
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "schedule = \"@hourly\"\n" {
		t.Error("existing rawzone.toml was overwritten")
	}
}
