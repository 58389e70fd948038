package service

import (
	"log/slog"
	"time"

	"github.com/southgate-leisure/feedback/internal/repository"
)

// Janitor deletes feedback past the retention window and expired sessions.
// SQL has no document-store TTL index, so eviction runs as a periodic sweep.
type Janitor struct {
	feedbackRepository repository.FeedbackRepository
	sessionRepository  repository.SessionRepository
	retention          time.Duration
}

func NewJanitor(
	feedbackRepository repository.FeedbackRepository,
	sessionRepository repository.SessionRepository,
	retention time.Duration,
) *Janitor {
	return &Janitor{
		feedbackRepository: feedbackRepository,
		sessionRepository:  sessionRepository,
		retention:          retention,
	}
}

// Start sweeps once immediately, then on every tick.
func (j *Janitor) Start(interval time.Duration) {
	go func() {
		j.Sweep(time.Now())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			j.Sweep(time.Now())
		}
	}()
}

// Sweep runs one eviction pass. Failures are logged and retried on the next
// tick rather than propagated.
func (j *Janitor) Sweep(now time.Time) {
	cutoff := now.Add(-j.retention)

	deleted, err := j.feedbackRepository.DeleteOlderThan(cutoff)
	if err != nil {
		slog.Error("janitor failed to delete aged feedback", "error", err)
	} else if deleted > 0 {
		slog.Info("janitor deleted aged feedback", "count", deleted, "cutoff", cutoff)
	}

	deleted, err = j.sessionRepository.DeleteExpired(now)
	if err != nil {
		slog.Error("janitor failed to delete expired sessions", "error", err)
	} else if deleted > 0 {
		slog.Debug("janitor deleted expired sessions", "count", deleted)
	}
}
