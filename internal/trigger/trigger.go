// Package trigger provides the sources that fire the ad_etl job start in
// serve mode: a cron schedule and a landing-zone watch.
package trigger

import "context"

// Event represents a trigger firing.
type Event struct {
	Source string   // "cron" or "watch"
	Files  []string // raw files that arrived (empty for cron)
}

// Trigger watches for conditions and emits events.
type Trigger interface {
	Start(ctx context.Context, events chan<- Event) error
	Name() string
}
