package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// AttemptRepository handles quiz attempt and attempt answer data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, quiz_id, learner_id, status, score, passed,
	started_at, expires_at, finished_at`

func scanAttempt(row pgx.Row) (*model.QuizAttempt, error) {
	a := &model.QuizAttempt{}
	err := row.Scan(&a.ID, &a.QuizID, &a.LearnerID, &a.Status, &a.Score, &a.Passed,
		&a.StartedAt, &a.ExpiresAt, &a.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new attempt.
func (r *AttemptRepository) Create(ctx context.Context, a *model.QuizAttempt) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quiz_attempts (quiz_id, learner_id, status, started_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		a.QuizID, a.LearnerID, a.Status, a.StartedAt, a.ExpiresAt,
	).Scan(&a.ID)
}

// GetByID retrieves an attempt by its UUID.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuizAttempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts WHERE id = $1`, id))
}

// CountByQuizAndLearner counts a learner's attempts at one quiz.
func (r *AttemptRepository) CountByQuizAndLearner(ctx context.Context, quizID uuid.UUID, learnerID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE quiz_id = $1 AND learner_id = $2`,
		quizID, learnerID).Scan(&n)
	return n, err
}

// ListByQuiz retrieves all attempts at a quiz, newest first.
func (r *AttemptRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.QuizAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts WHERE quiz_id = $1 ORDER BY started_at DESC`,
		quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.QuizAttempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

// Transition moves an attempt out of in_progress with a guarded
// conditional update. It reports false when no row moved — the attempt
// was already terminal (or missing) — so concurrent double-submission
// resolves to exactly one winner instead of an overwrite.
func (r *AttemptRepository) Transition(ctx context.Context, id uuid.UUID, to model.AttemptStatus, score *int, passed *bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quiz_attempts
		 SET status = $2, score = $3, passed = $4, finished_at = NOW()
		 WHERE id = $1 AND status = $5`,
		id, to, score, passed, model.AttemptStatusInProgress)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AbandonExpired flips every overdue in_progress attempt to abandoned
// and returns the affected attempts. Used by the expiry sweeper.
func (r *AttemptRepository) AbandonExpired(ctx context.Context, now time.Time) ([]model.QuizAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE quiz_attempts
		 SET status = $1, finished_at = $2
		 WHERE status = $3 AND expires_at IS NOT NULL AND expires_at < $2
		 RETURNING `+attemptColumns,
		model.AttemptStatusAbandoned, now, model.AttemptStatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.QuizAttempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

// UpsertAnswer stores one graded answer; re-answering the same question
// replaces the previous row.
func (r *AttemptRepository) UpsertAnswer(ctx context.Context, ans *model.AttemptAnswer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attempt_answers (attempt_id, question_id, answer, is_correct, score)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (attempt_id, question_id)
		 DO UPDATE SET answer = EXCLUDED.answer, is_correct = EXCLUDED.is_correct,
		               score = EXCLUDED.score, answered_at = NOW()
		 RETURNING answered_at`,
		ans.AttemptID, ans.QuestionID, ans.Answer, ans.IsCorrect, ans.Score,
	).Scan(&ans.AnsweredAt)
}

// ListAnswers retrieves all answers recorded for an attempt.
func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.AttemptAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT attempt_id, question_id, answer, is_correct, score, answered_at
		 FROM attempt_answers WHERE attempt_id = $1 ORDER BY answered_at`,
		attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.AttemptAnswer
	for rows.Next() {
		var a model.AttemptAnswer
		if err := rows.Scan(&a.AttemptID, &a.QuestionID, &a.Answer, &a.IsCorrect, &a.Score, &a.AnsweredAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
