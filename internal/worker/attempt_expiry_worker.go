package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// expiredAbandoner is the slice of the attempt service the sweeper needs.
type expiredAbandoner interface {
	AbandonExpired(ctx context.Context) ([]model.QuizAttempt, error)
}

// AttemptExpiryWorker periodically abandons in_progress attempts whose
// deadline has passed. Expiry is enforced at answer time as well; the
// sweeper is what moves the row to its terminal state and notifies
// monitors when the learner simply walked away.
type AttemptExpiryWorker struct {
	attempts expiredAbandoner
	interval time.Duration
	log      zerolog.Logger
}

// NewAttemptExpiryWorker creates a new AttemptExpiryWorker.
func NewAttemptExpiryWorker(attempts expiredAbandoner, interval time.Duration, log zerolog.Logger) *AttemptExpiryWorker {
	return &AttemptExpiryWorker{
		attempts: attempts,
		interval: interval,
		log:      log.With().Str("component", "attempt_expiry_worker").Logger(),
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *AttemptExpiryWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("AttemptExpiryWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("AttemptExpiryWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AttemptExpiryWorker) sweep(ctx context.Context) {
	swept, err := w.attempts.AbandonExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Expiry sweep failed")
		}
		return
	}
	if len(swept) > 0 {
		w.log.Info().Int("abandoned", len(swept)).Msg("Expired attempts abandoned")
	}
}
