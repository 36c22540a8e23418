package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// QuestionRepository handles question data access, including the
// transactional linkage that keeps a quiz's question_ids and
// total_points consistent with its member questions.
//
// Membership and the point total always move together inside one
// transaction, as a single guarded UPDATE against the quizzes row.
// Concurrent callers mutating the same quiz therefore cannot lose an
// increment to a read-modify-write race.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, course_id, teacher_id, question_type, question_text, points,
	explanation, options, correct_answers, settings, created_at, updated_at`

func scanQuestion(row pgx.Row) (*model.Question, error) {
	q := &model.Question{}
	err := row.Scan(&q.ID, &q.CourseID, &q.TeacherID, &q.Type, &q.Text, &q.Points,
		&q.Explanation, &q.Options, &q.CorrectAnswers, &q.Settings,
		&q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID retrieves a question by its UUID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id))
}

// ListByIDs retrieves questions by ID, preserving the order of ids.
func (r *QuestionRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 JOIN UNNEST($1::uuid[]) WITH ORDINALITY AS ord(qid, pos) ON id = ord.qid
		 ORDER BY ord.pos`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// AddToQuiz inserts a question and links it to the quiz in one
// transaction: append the id to question_ids and increment total_points
// by the question's points. The append is guarded on membership so an id
// already present is never double-counted.
func (r *QuestionRepository) AddToQuiz(ctx context.Context, quizID uuid.UUID, q *model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO questions (course_id, teacher_id, question_type, question_text,
		                        points, explanation, options, correct_answers, settings)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		q.CourseID, q.TeacherID, q.Type, q.Text, q.Points, q.Explanation,
		q.Options, q.CorrectAnswers, q.Settings,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE quizzes
		 SET question_ids = array_append(question_ids, $2),
		     total_points = total_points + $3,
		     updated_at = NOW()
		 WHERE id = $1 AND NOT (question_ids @> ARRAY[$2]::uuid[])`,
		quizID, q.ID, q.Points)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// The id is freshly generated, so a membership collision is
		// impossible; zero rows means the quiz does not exist.
		return model.ErrQuizNotFound
	}

	return tx.Commit(ctx)
}

// UpdateInQuiz persists an updated question addressed through a quiz.
// The question must already be a member of the quiz; otherwise nothing
// is written and ErrQuestionNotFound is returned. The signed points
// delta, computed against the locked current row, lands on the quiz's
// total_points in the same transaction.
func (r *QuestionRepository) UpdateInQuiz(ctx context.Context, quizID uuid.UUID, q *model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var member bool
	err = tx.QueryRow(ctx,
		`SELECT question_ids @> ARRAY[$2]::uuid[] FROM quizzes WHERE id = $1 FOR UPDATE`,
		quizID, q.ID).Scan(&member)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrQuizNotFound
	}
	if err != nil {
		return err
	}
	if !member {
		return model.ErrQuestionNotFound
	}

	var oldPoints int
	err = tx.QueryRow(ctx,
		`SELECT points FROM questions WHERE id = $1 FOR UPDATE`, q.ID).Scan(&oldPoints)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrQuestionNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE questions
		 SET question_text = $2, points = $3, explanation = $4, options = $5,
		     correct_answers = $6, settings = $7, updated_at = NOW()
		 WHERE id = $1`,
		q.ID, q.Text, q.Points, q.Explanation, q.Options, q.CorrectAnswers, q.Settings)
	if err != nil {
		return err
	}

	if delta := q.Points - oldPoints; delta != 0 {
		_, err = tx.Exec(ctx,
			`UPDATE quizzes SET total_points = total_points + $2, updated_at = NOW() WHERE id = $1`,
			quizID, delta)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// RemoveFromQuiz unlinks a question from the quiz and deletes it in one
// transaction: remove the id from question_ids and decrement
// total_points by the question's current points. An id that is not a
// member — including one already deleted — yields ErrQuestionNotFound,
// never a second decrement.
func (r *QuestionRepository) RemoveFromQuiz(ctx context.Context, quizID, questionID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE quizzes
		 SET question_ids = array_remove(question_ids, $2),
		     total_points = total_points - COALESCE((SELECT points FROM questions WHERE id = $2), 0),
		     updated_at = NOW()
		 WHERE id = $1 AND question_ids @> ARRAY[$2]::uuid[]`,
		quizID, questionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrQuestionNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, questionID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
