package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `id, course_id, teacher_id, title, description, question_ids,
	total_points, max_attempts, passing_score, time_limit_minutes,
	shuffle_questions, show_results, is_published, created_at, updated_at`

func scanQuiz(row pgx.Row) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := row.Scan(&q.ID, &q.CourseID, &q.TeacherID, &q.Title, &q.Description,
		&q.QuestionIDs, &q.TotalPoints, &q.MaxAttempts, &q.PassingScore,
		&q.TimeLimitMinutes, &q.ShuffleQuestions, &q.ShowResults,
		&q.IsPublished, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID retrieves a quiz by its UUID.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
}

// ListByCourse retrieves all quizzes for a course, newest first.
func (r *QuizRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE course_id = $1 ORDER BY created_at DESC`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

// Create inserts a new quiz with an empty question list and a zero total.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (course_id, teacher_id, title, description, max_attempts,
		                      passing_score, time_limit_minutes, shuffle_questions,
		                      show_results, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, question_ids, total_points, created_at, updated_at`,
		q.CourseID, q.TeacherID, q.Title, q.Description, q.MaxAttempts,
		q.PassingScore, q.TimeLimitMinutes, q.ShuffleQuestions,
		q.ShowResults, q.IsPublished,
	).Scan(&q.ID, &q.QuestionIDs, &q.TotalPoints, &q.CreatedAt, &q.UpdatedAt)
}

// UpdateSettings persists quiz settings. Question membership and the
// point total are never written through this path; they only move inside
// the question bookkeeping transactions.
func (r *QuizRepository) UpdateSettings(ctx context.Context, q *model.Quiz) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET title = $2, description = $3, max_attempts = $4, passing_score = $5,
		     time_limit_minutes = $6, shuffle_questions = $7, show_results = $8,
		     updated_at = NOW()
		 WHERE id = $1`,
		q.ID, q.Title, q.Description, q.MaxAttempts, q.PassingScore,
		q.TimeLimitMinutes, q.ShuffleQuestions, q.ShowResults)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrQuizNotFound
	}
	return nil
}

// SetPublished flips the publication flag.
func (r *QuizRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quizzes SET is_published = $2, updated_at = NOW() WHERE id = $1`,
		id, published)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrQuizNotFound
	}
	return nil
}
