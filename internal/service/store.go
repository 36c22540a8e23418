package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// Data access contracts consumed by the services. The repository package
// satisfies them against PostgreSQL; tests substitute in-memory fakes.

// CourseStore provides course lookups.
type CourseStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByTeacher(ctx context.Context, teacherID int) ([]model.Course, error)
	Create(ctx context.Context, c *model.Course) error
}

// QuizStore provides quiz persistence. Implementations must never touch
// question_ids or total_points through UpdateSettings; those move only
// through QuestionStore's transactional linkage.
type QuizStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Quiz, error)
	Create(ctx context.Context, quiz *model.Quiz) error
	UpdateSettings(ctx context.Context, quiz *model.Quiz) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}

// QuestionStore provides question persistence. AddToQuiz, UpdateInQuiz
// and RemoveFromQuiz are atomic: quiz membership and the quiz's
// total_points change together or not at all.
type QuestionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error)
	AddToQuiz(ctx context.Context, quizID uuid.UUID, q *model.Question) error
	UpdateInQuiz(ctx context.Context, quizID uuid.UUID, q *model.Question) error
	RemoveFromQuiz(ctx context.Context, quizID, questionID uuid.UUID) error
}

// AttemptStore provides attempt persistence. Transition reports false
// when the attempt was not in_progress, so races between competing
// finishers resolve to exactly one winner.
type AttemptStore interface {
	Create(ctx context.Context, a *model.QuizAttempt) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuizAttempt, error)
	CountByQuizAndLearner(ctx context.Context, quizID uuid.UUID, learnerID int) (int, error)
	ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.QuizAttempt, error)
	Transition(ctx context.Context, id uuid.UUID, to model.AttemptStatus, score *int, passed *bool) (bool, error)
	AbandonExpired(ctx context.Context, now time.Time) ([]model.QuizAttempt, error)
	UpsertAnswer(ctx context.Context, ans *model.AttemptAnswer) error
	ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.AttemptAnswer, error)
}
