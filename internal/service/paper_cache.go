package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brightclass/brightclass-backend/internal/config"
	"github.com/brightclass/brightclass-backend/internal/model"
)

// PaperCache keeps rendered quiz papers (answer keys already stripped)
// in Redis so the learner start path does not hit PostgreSQL for every
// attempt. The cache is invalidated on any mutation of the quiz or its
// questions; the TTL is only a backstop.
type PaperCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewPaperCache creates a PaperCache with the given entry TTL.
func NewPaperCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *PaperCache {
	return &PaperCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "paper_cache").Logger(),
	}
}

// Get returns the cached paper for a quiz, or nil on a miss. Redis
// failures degrade to a miss so the caller falls back to the database.
func (c *PaperCache) Get(ctx context.Context, quizID uuid.UUID) *model.QuizPaper {
	raw, err := c.rdb.Get(ctx, config.CacheKey.QuizPaperKey(quizID.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("paper cache read failed")
		return nil
	}

	paper := &model.QuizPaper{}
	if err := json.Unmarshal(raw, paper); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("paper cache entry corrupt")
		return nil
	}
	return paper
}

// Set stores a rendered paper. Failures are logged and swallowed; the
// cache is an optimization, not a source of truth.
func (c *PaperCache) Set(ctx context.Context, paper *model.QuizPaper) {
	raw, err := json.Marshal(paper)
	if err != nil {
		c.log.Warn().Err(err).Msg("paper cache marshal failed")
		return
	}
	key := config.CacheKey.QuizPaperKey(paper.QuizID.String())
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", paper.QuizID.String()).Msg("paper cache write failed")
	}
}

// Invalidate drops the cached paper for a quiz.
func (c *PaperCache) Invalidate(ctx context.Context, quizID uuid.UUID) {
	if err := c.rdb.Del(ctx, config.CacheKey.QuizPaperKey(quizID.String())).Err(); err != nil {
		c.log.Warn().Err(err).Str("quiz_id", quizID.String()).Msg("paper cache invalidate failed")
	}
}
