package trigger

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adlake/rawzone/internal/config"
	zoneftp "github.com/adlake/rawzone/internal/ftp"
)

// SecretsResolver resolves secrets by scope.
type SecretsResolver interface {
	Resolve(scope, key string) (string, error)
}

// secretScope is the secrets section the watch trigger resolves against.
const secretScope = "watch"

// fileState tracks a file's stability during polling.
type fileState struct {
	Size      int64
	FirstSeen time.Time
}

// WatchTrigger polls the landing zone for raw files matching a pattern. A
// file counts as arrived once its size has held steady long enough, so
// half-uploaded files never fire the trigger.
type WatchTrigger struct {
	cfg     *config.WatchConfig
	secrets SecretsResolver
}

// NewWatchTrigger creates a landing-zone watch trigger.
func NewWatchTrigger(cfg *config.WatchConfig, secrets SecretsResolver) (*WatchTrigger, error) {
	if secrets == nil {
		return nil, fmt.Errorf("secrets store required for landing-zone watch")
	}
	return &WatchTrigger{cfg: cfg, secrets: secrets}, nil
}

// Name returns a human-readable identifier for this trigger.
func (wt *WatchTrigger) Name() string {
	return fmt.Sprintf("watch(%s:%d%s %s)",
		wt.cfg.Host, wt.cfg.Port, wt.cfg.Directory, wt.cfg.Pattern)
}

// Start begins the poll loop and sends events when stable files are found.
// Blocks until the context is cancelled.
func (wt *WatchTrigger) Start(ctx context.Context, events chan<- Event) error {
	ticker := time.NewTicker(wt.cfg.EffectivePollInterval())
	defer ticker.Stop()

	tracking := make(map[string]fileState)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			wt.poll(ctx, events, tracking)
		}
	}
}

func (wt *WatchTrigger) poll(ctx context.Context, events chan<- Event, tracking map[string]fileState) {
	password, err := wt.secrets.Resolve(secretScope, wt.cfg.PasswordSecret)
	if err != nil {
		log.Printf("[watch] resolving password secret %q: %v", wt.cfg.PasswordSecret, err)
		return
	}

	client, err := zoneftp.Connect(wt.cfg.Host, wt.cfg.Port, wt.cfg.User, password, wt.cfg.TLS)
	if err != nil {
		log.Printf("[watch] connect: %v", err)
		return
	}
	defer client.Close()

	files, err := client.List(wt.cfg.Directory, wt.cfg.Pattern)
	if err != nil {
		log.Printf("[watch] list: %v", err)
		return
	}

	now := time.Now()
	stable := Observe(tracking, files, time.Duration(wt.cfg.StableSeconds)*time.Second, now)
	if len(stable) == 0 {
		return
	}

	select {
	case events <- Event{Source: "watch", Files: stable}:
	case <-ctx.Done():
	}
}

// Observe folds one poll's listing into the tracking map and returns the
// files whose size has been stable for at least the threshold. Returned files
// are removed from tracking so they fire exactly once.
// Exported for testability.
func Observe(tracking map[string]fileState, files []zoneftp.FileInfo, threshold time.Duration, now time.Time) []string {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.Name] = true
		prev, exists := tracking[f.Name]
		if !exists || prev.Size != f.Size {
			// New file or size changed — (re)start stability timer
			tracking[f.Name] = fileState{Size: f.Size, FirstSeen: now}
		}
	}

	// Forget files that disappeared between polls
	for name := range tracking {
		if !seen[name] {
			delete(tracking, name)
		}
	}

	var stable []string
	for name, state := range tracking {
		if now.Sub(state.FirstSeen) >= threshold {
			stable = append(stable, name)
		}
	}
	for _, name := range stable {
		delete(tracking, name)
	}
	return stable
}
