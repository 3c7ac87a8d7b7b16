package dating

import (
	"context"
	"log"
	"time"
)

// Scheduler runs periodic housekeeping for the in-memory session store
type Scheduler struct {
	sessions *MemorySessionStore
	interval time.Duration
}

func NewScheduler(sessions *MemorySessionStore, interval time.Duration) *Scheduler {
	return &Scheduler{sessions: sessions, interval: interval}
}

// Start sweeps expired wizard sessions until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) {
	go s.runEvery(ctx, s.interval, s.sweepSessions)
}

func (s *Scheduler) sweepSessions(ctx context.Context) error {
	if removed := s.sessions.Sweep(); removed > 0 {
		log.Printf("🧹 Removed %d expired wizard sessions", removed)
	}
	return nil
}

func (s *Scheduler) runEvery(ctx context.Context, interval time.Duration, task func(context.Context) error) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := task(ctx); err != nil {
				log.Printf("Scheduled task failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
