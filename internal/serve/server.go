// Package serve runs the trigger daemon: it watches the configured sources
// and fires the ad_etl job start for each event, mirroring what the deployed
// Lambda does when the raw zone receives new objects.
package serve

import (
	"context"
	"fmt"
	"log"
	"path"
	"sync"

	"github.com/adlake/rawzone/internal/config"
	zoneftp "github.com/adlake/rawzone/internal/ftp"
	"github.com/adlake/rawzone/internal/handler"
	"github.com/adlake/rawzone/internal/secrets"
	"github.com/adlake/rawzone/internal/trigger"
)

// Server manages triggers and fires the job start in response to events.
type Server struct {
	cfg      *config.Config
	store    *secrets.Store
	handler  *handler.Handler
	triggers []trigger.Trigger
	eventCh  chan trigger.Event

	// archiveFn moves triggering files out of the landing zone after a
	// successful start. Overridable in tests.
	archiveFn func(files []string) error

	mu       sync.Mutex
	inFlight bool
}

// NewServer validates the config and registers triggers.
func NewServer(cfg *config.Config, store *secrets.Store, newStarter handler.StarterFactory) (*Server, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("ERROR: %s", e)
		}
		return nil, fmt.Errorf("config validation found %d error(s)", len(errs))
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		handler: handler.New(newStarter),
		eventCh: make(chan trigger.Event, 64),
	}
	s.archiveFn = s.archiveLandingFiles

	if cfg.Schedule != "" {
		ct, err := trigger.NewCronTrigger(cfg.Schedule)
		if err != nil {
			return nil, err
		}
		s.triggers = append(s.triggers, ct)
	}

	if cfg.Watch != nil {
		if store == nil {
			return nil, fmt.Errorf("[watch] requires a secrets file (--secrets)")
		}
		wt, err := trigger.NewWatchTrigger(cfg.Watch, store)
		if err != nil {
			return nil, err
		}
		s.triggers = append(s.triggers, wt)
	}

	if len(s.triggers) == 0 {
		return nil, fmt.Errorf("no triggers registered (set schedule or [watch] in %s)", cfg.Path())
	}

	return s, nil
}

// Start launches all triggers and processes events until the context is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Printf("rawzone serve: %d trigger(s) registered for %s", len(s.triggers), handler.JobName)
	for _, t := range s.triggers {
		log.Printf("  %s", t.Name())
	}

	triggerCtx, triggerCancel := context.WithCancel(ctx)
	defer triggerCancel()

	var triggerWg sync.WaitGroup
	for _, t := range s.triggers {
		triggerWg.Add(1)
		go func(trig trigger.Trigger) {
			defer triggerWg.Done()
			if err := trig.Start(triggerCtx, s.eventCh); err != nil {
				log.Printf("trigger %s error: %v", trig.Name(), err)
			}
		}(t)
	}

	var runWg sync.WaitGroup
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-s.eventCh:
				s.handleEvent(ctx, ev, &runWg)
			}
		}
	}()

	<-ctx.Done()
	log.Println("rawzone serve: shutting down...")

	triggerCancel()
	triggerWg.Wait()

	// Let in-flight start requests finish reporting
	runWg.Wait()
	log.Println("rawzone serve: stopped")
	return nil
}

// handleEvent fires exactly one job-start request for the event, unless the
// overlap policy skips it.
func (s *Server) handleEvent(ctx context.Context, ev trigger.Event, wg *sync.WaitGroup) {
	s.mu.Lock()
	if s.inFlight && s.cfg.Overlap == "skip" {
		s.mu.Unlock()
		log.Printf("[%s] skipping: start request already in flight (overlap=skip)", ev.Source)
		return
	}
	s.inFlight = true
	s.mu.Unlock()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			s.mu.Lock()
			s.inFlight = false
			s.mu.Unlock()
		}()

		log.Printf("[%s] triggered (%d file(s))", ev.Source, len(ev.Files))

		result, _ := s.handler.Handle(ctx, nil)
		if errText, failed := result[handler.KeyError]; failed {
			log.Printf("[%s] %s: %s", ev.Source, result[handler.KeyMessage], errText)
			return
		}
		log.Printf("[%s] %s (JobRunId=%s)", ev.Source, result[handler.KeyMessage], result[handler.KeyJobRunID])

		// Move triggering files out of the landing zone so the next poll
		// does not fire again for them
		if ev.Source == "watch" && len(ev.Files) > 0 {
			if err := s.archiveFn(ev.Files); err != nil {
				log.Printf("[%s] archive failed: %v", ev.Source, err)
			}
		}
	}()
}

// archiveLandingFiles moves files into the configured archive directory.
// A no-op when no archive_dir is configured.
func (s *Server) archiveLandingFiles(files []string) error {
	w := s.cfg.Watch
	if w == nil || w.ArchiveDir == "" {
		return nil
	}

	password, err := s.store.Resolve("watch", w.PasswordSecret)
	if err != nil {
		return fmt.Errorf("resolving password: %w", err)
	}

	client, err := zoneftp.Connect(w.Host, w.Port, w.User, password, w.TLS)
	if err != nil {
		return err
	}
	defer client.Close()

	client.MkdirAll(w.ArchiveDir)

	for _, name := range files {
		src := path.Join(w.Directory, name)
		dst := path.Join(w.ArchiveDir, name)
		if err := client.Move(src, dst); err != nil {
			return fmt.Errorf("archiving %q: %w", name, err)
		}
		log.Printf("[watch] archived %s to %s", name, w.ArchiveDir)
	}

	return nil
}
