package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brightclass/brightclass-backend/internal/config"
	"github.com/brightclass/brightclass-backend/internal/model"
	ws "github.com/brightclass/brightclass-backend/internal/websocket"
)

// AttemptEventPublisher pushes attempt lifecycle events toward whoever
// is watching a quiz. Publishing is best-effort; attempt state changes
// never fail because an event could not be delivered.
type AttemptEventPublisher interface {
	PublishAttemptEvent(ctx context.Context, event ws.AttemptEvent)
}

// MonitorService fans attempt lifecycle events out to monitoring
// teachers through Redis pub/sub. Each quiz has its own channel, so a
// monitor only receives traffic for the quiz it watches — and events
// reach every server instance, not just the one that handled the
// learner's request.
type MonitorService struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewMonitorService creates a new MonitorService.
func NewMonitorService(rdb *redis.Client, log zerolog.Logger) *MonitorService {
	return &MonitorService{
		rdb: rdb,
		log: log.With().Str("component", "monitor").Logger(),
	}
}

// PublishAttemptEvent publishes one event on the quiz's monitor channel.
func (s *MonitorService) PublishAttemptEvent(ctx context.Context, event ws.AttemptEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	raw, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal attempt event")
		return
	}

	channel := config.CacheKey.QuizMonitorChannel(event.QuizID.String())
	if err := s.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		s.log.Warn().Err(err).
			Str("quiz_id", event.QuizID.String()).
			Str("event", string(event.Event)).
			Msg("publish attempt event failed")
	}
}

// Subscribe opens a subscription on a quiz's monitor channel. The caller
// owns the returned PubSub and must Close it.
func (s *MonitorService) Subscribe(ctx context.Context, quizID uuid.UUID) *redis.PubSub {
	return s.rdb.Subscribe(ctx, config.CacheKey.QuizMonitorChannel(quizID.String()))
}

// attemptEvent builds the common fields of an AttemptEvent from an attempt.
func attemptEvent(kind ws.Event, a *model.QuizAttempt) ws.AttemptEvent {
	return ws.AttemptEvent{
		Event:     kind,
		QuizID:    a.QuizID,
		AttemptID: a.ID,
		LearnerID: a.LearnerID,
		Score:     a.Score,
		Passed:    a.Passed,
		At:        time.Now(),
	}
}
