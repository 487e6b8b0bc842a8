package services

import (
	"time"

	"github.com/lumora-app/matchmaker/pkg/logger"
)

// Scheduler drives the matching pipeline: one pass per interval, plus
// on-demand triggers. Everything runs on a single goroutine, so passes
// are serialized by construction; a pass fully completes before the
// next one starts.
type Scheduler struct {
	svc       *MatchService
	interval  time.Duration
	retention time.Duration

	trigger chan struct{}
	quit    chan struct{}
	done    chan struct{}
}

func NewScheduler(svc *MatchService, interval, retention time.Duration) *Scheduler {
	return &Scheduler{
		svc:       svc,
		interval:  interval,
		retention: retention,
		trigger:   make(chan struct{}, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the scheduling loop.
func (s *Scheduler) Start() {
	logger.Info("Scheduler started", "interval", s.interval)
	go s.loop()
}

// Stop shuts the loop down and waits for an in-flight pass to finish.
// There is no mid-pass cancellation.
func (s *Scheduler) Stop() {
	close(s.quit)
	<-s.done
	logger.Info("Scheduler stopped")
}

// TriggerNow requests an immediate pass. If a trigger is already
// pending the request coalesces into it.
func (s *Scheduler) TriggerNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Retention cleanup rides along on a slower tick.
	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.runPass()
		case <-s.trigger:
			s.runPass()
		case <-cleanup.C:
			s.svc.PurgeInactive(time.Now().UTC().Add(-s.retention))
		}
	}
}

// runPass shields the loop from anything a pass throws at it. A
// failed or panicking pass is logged and the next one runs on
// schedule.
func (s *Scheduler) runPass() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Matching pass panicked", "panic", r)
		}
	}()

	if _, err := s.svc.RunMatchingPass(); err != nil {
		logger.Error("Matching pass failed", "error", err)
	}
}
