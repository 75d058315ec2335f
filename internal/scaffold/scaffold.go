// Package scaffold writes starter configuration for a new rawzone deployment.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// Create writes a commented rawzone.toml and a secrets template into dir.
// Refuses to overwrite existing files.
func Create(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	files := map[string]struct {
		content string
		mode    os.FileMode
	}{
		filepath.Join(dir, "rawzone.toml"): {configToml(), 0o644},
		filepath.Join(dir, "secrets.toml"): {secretsToml(), 0o600},
	}

	for path := range files {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s", path)
		}
	}

	for path, f := range files {
		if err := os.WriteFile(path, []byte(f.content), f.mode); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return nil
}

func configToml() string {
	return `# rawzone serve configuration.
# The Lambda deployment needs none of this; it is wired to S3 events.

# Fire the trigger on a schedule (standard cron or @every/@hourly forms).
schedule = "0 6 * * *"

# What to do when a trigger fires while a start request is in flight:
# "allow" (default) fires again, "skip" drops the event.
overlap = "skip"

# Fire the trigger when raw files land in an FTP zone. Remove this block
# if only the schedule should fire.
[watch]
host = "ftp.example.com"
port = 21
user = "ads"
password_secret = "landing_password"
directory = "/landing/ads"
pattern = "*.csv"
archive_dir = "/landing/ads/archive"
poll_interval = "30s"
stable_seconds = 60
`
}

func secretsToml() string {
	return `# Secrets for rawzone serve. Keep this file out of version control.

[watch]
landing_password = "change-me"
`
}
