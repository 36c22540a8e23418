package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/question"
	ws "github.com/brightclass/brightclass-backend/internal/websocket"
)

// SubmitAnswerResult is the outcome of answering one question. Grading
// is always in the Answer row; Feedback is only populated when the quiz
// shows results to learners mid-attempt.
type SubmitAnswerResult struct {
	Answer   *model.AttemptAnswer    `json:"answer"`
	Feedback *question.ScoringResult `json:"feedback,omitempty"`
}

// AttemptService owns the attempt state machine. An attempt starts
// in_progress and moves exactly once to completed or abandoned; both
// are terminal. All learner-side operations are owner-only.
type AttemptService struct {
	attempts  AttemptStore
	quizzes   QuizStore
	questions QuestionStore
	registry  *question.Registry
	events    AttemptEventPublisher
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attempts AttemptStore, quizzes QuizStore, questions QuestionStore, registry *question.Registry, events AttemptEventPublisher) *AttemptService {
	return &AttemptService{
		attempts:  attempts,
		quizzes:   quizzes,
		questions: questions,
		registry:  registry,
		events:    events,
	}
}

// Start opens a new in_progress attempt at a published quiz. A positive
// max_attempts on the quiz caps how many attempts the learner may open;
// zero means unlimited. A time limit, when set, fixes expires_at up
// front so expiry is a property of the row, not of server memory.
func (s *AttemptService) Start(ctx context.Context, learnerID int, quizID uuid.UUID) (*model.QuizAttempt, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, model.ErrQuizNotPublished
	}

	if quiz.MaxAttempts > 0 {
		used, err := s.attempts.CountByQuizAndLearner(ctx, quizID, learnerID)
		if err != nil {
			return nil, err
		}
		if used >= quiz.MaxAttempts {
			return nil, model.ErrMaxAttemptsReached
		}
	}

	now := time.Now()
	attempt := &model.QuizAttempt{
		QuizID:    quizID,
		LearnerID: learnerID,
		Status:    model.AttemptStatusInProgress,
		StartedAt: now,
	}
	if quiz.TimeLimitMinutes != nil {
		expires := now.Add(time.Duration(*quiz.TimeLimitMinutes) * time.Minute)
		attempt.ExpiresAt = &expires
	}

	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}

	s.events.PublishAttemptEvent(ctx, attemptEvent(ws.EventAttemptStarted, attempt))
	return attempt, nil
}

// Get retrieves an attempt for its owning learner.
func (s *AttemptService) Get(ctx context.Context, learnerID int, attemptID uuid.UUID) (*model.QuizAttempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.LearnerID != learnerID {
		return nil, model.ErrNotOwner
	}
	return attempt, nil
}

// SubmitAnswer grades and records one answer on a live attempt.
// Re-answering a question replaces the earlier answer. The graded
// correctness is withheld from the result when the quiz hides results.
func (s *AttemptService) SubmitAnswer(ctx context.Context, learnerID int, attemptID uuid.UUID, req *model.SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	attempt, err := s.liveAttempt(ctx, learnerID, attemptID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizzes.GetByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	if !containsID(quiz.QuestionIDs, req.QuestionID) {
		return nil, model.ErrQuestionNotFound
	}

	q, err := s.questions.GetByID(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	p, ok := s.registry.Get(q.Type)
	if !ok {
		return nil, model.ErrUnsupportedQuestionType
	}

	validation := p.ValidateAnswer(req.Answer, q)
	if !validation.IsValid {
		return nil, &AnswerRejectedError{Errors: validation.Errors}
	}

	graded := question.GradeAnswer(p, validation.NormalizedAnswer, q)
	answer := &model.AttemptAnswer{
		AttemptID:  attemptID,
		QuestionID: req.QuestionID,
		Answer:     validation.NormalizedAnswer,
		IsCorrect:  graded.IsCorrect,
		Score:      graded.Score,
	}
	if err := s.attempts.UpsertAnswer(ctx, answer); err != nil {
		return nil, err
	}

	event := attemptEvent(ws.EventAnswerSubmitted, attempt)
	event.QuestionID = &req.QuestionID
	s.events.PublishAttemptEvent(ctx, event)

	result := &SubmitAnswerResult{Answer: answer}
	if quiz.ShowResults {
		result.Feedback = &graded
	} else {
		// Hide grading from the learner-facing copy as well.
		masked := *answer
		masked.IsCorrect = false
		masked.Score = 0
		result.Answer = &masked
	}
	return result, nil
}

// Transition moves an attempt out of in_progress. Completing grades the
// attempt: the score is the sum of recorded answer scores, and passed
// compares it against the quiz's passing score. Abandoning records
// neither. The store-level guard makes the transition race-safe: when a
// competing request finished the attempt first, the loser gets
// model.ErrAttemptTerminal.
func (s *AttemptService) Transition(ctx context.Context, learnerID int, attemptID uuid.UUID, to model.AttemptStatus) (*model.QuizAttempt, error) {
	attempt, err := s.Get(ctx, learnerID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status.Terminal() {
		return nil, model.ErrAttemptTerminal
	}

	var (
		score  *int
		passed *bool
		event  ws.Event
	)
	switch to {
	case model.AttemptStatusCompleted:
		quiz, err := s.quizzes.GetByID(ctx, attempt.QuizID)
		if err != nil {
			return nil, err
		}
		answers, err := s.attempts.ListAnswers(ctx, attemptID)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, a := range answers {
			total += a.Score
		}
		ok := total >= quiz.PassingScore
		score, passed = &total, &ok
		event = ws.EventAttemptCompleted
	case model.AttemptStatusAbandoned:
		event = ws.EventAttemptAbandoned
	default:
		return nil, model.ErrAttemptTerminal
	}

	moved, err := s.attempts.Transition(ctx, attemptID, to, score, passed)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, model.ErrAttemptTerminal
	}

	updated, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	s.events.PublishAttemptEvent(ctx, attemptEvent(event, updated))
	return updated, nil
}

// ListAnswers retrieves the answers recorded on the learner's attempt.
// Grading is withheld while the attempt is live and the quiz hides
// results.
func (s *AttemptService) ListAnswers(ctx context.Context, learnerID int, attemptID uuid.UUID) ([]model.AttemptAnswer, error) {
	attempt, err := s.Get(ctx, learnerID, attemptID)
	if err != nil {
		return nil, err
	}

	answers, err := s.attempts.ListAnswers(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizzes.GetByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	if !quiz.ShowResults && !attempt.Status.Terminal() {
		for i := range answers {
			answers[i].IsCorrect = false
			answers[i].Score = 0
		}
	}
	return answers, nil
}

// ListByQuiz retrieves every attempt at a quiz for its owning teacher.
func (s *AttemptService) ListByQuiz(ctx context.Context, teacherID int, quizID uuid.UUID) ([]model.QuizAttempt, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.TeacherID != teacherID {
		return nil, model.ErrNotOwner
	}
	return s.attempts.ListByQuiz(ctx, quizID)
}

// AbandonExpired sweeps every overdue in_progress attempt to abandoned
// and publishes an event per attempt. Called by the expiry worker.
func (s *AttemptService) AbandonExpired(ctx context.Context) ([]model.QuizAttempt, error) {
	abandoned, err := s.attempts.AbandonExpired(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for i := range abandoned {
		s.events.PublishAttemptEvent(ctx, attemptEvent(ws.EventAttemptAbandoned, &abandoned[i]))
	}
	return abandoned, nil
}

// liveAttempt fetches an owned attempt and verifies it still accepts
// answers: not terminal and not past its deadline. An overdue attempt is
// reported expired here; the background sweeper will abandon it.
func (s *AttemptService) liveAttempt(ctx context.Context, learnerID int, attemptID uuid.UUID) (*model.QuizAttempt, error) {
	attempt, err := s.Get(ctx, learnerID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status.Terminal() {
		return nil, model.ErrAttemptTerminal
	}
	if attempt.ExpiresAt != nil && time.Now().After(*attempt.ExpiresAt) {
		return nil, model.ErrAttemptExpired
	}
	return attempt, nil
}

// AnswerRejectedError carries the provider's answer validation failures.
type AnswerRejectedError struct {
	Errors []string
}

func (e *AnswerRejectedError) Error() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return "answer rejected"
}
