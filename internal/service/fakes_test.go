package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
	ws "github.com/brightclass/brightclass-backend/internal/websocket"
)

// memStore is an in-memory implementation of the service store
// contracts. It mirrors the relational semantics the services rely on:
// quiz membership and total_points move together, transitions are
// guarded on in_progress, and answers upsert per (attempt, question).
type memStore struct {
	mu        sync.Mutex
	courses   map[uuid.UUID]*model.Course
	quizzes   map[uuid.UUID]*model.Quiz
	questions map[uuid.UUID]*model.Question
	attempts  map[uuid.UUID]*model.QuizAttempt
	answers   map[uuid.UUID][]model.AttemptAnswer
}

func newMemStore() *memStore {
	return &memStore{
		courses:   make(map[uuid.UUID]*model.Course),
		quizzes:   make(map[uuid.UUID]*model.Quiz),
		questions: make(map[uuid.UUID]*model.Question),
		attempts:  make(map[uuid.UUID]*model.QuizAttempt),
		answers:   make(map[uuid.UUID][]model.AttemptAnswer),
	}
}

// ─── CourseStore ────────────────────────────────────────────────────

func (s *memStore) GetCourseByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, model.ErrCourseNotFound
	}
	return c, nil
}

func (s *memStore) ListByTeacher(ctx context.Context, teacherID int) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Course
	for _, c := range s.courses {
		if c.TeacherID == teacherID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memStore) CreateCourse(ctx context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.courses[c.ID] = c
	return nil
}

// courseStore adapts memStore to the CourseStore contract; the method
// names collide with the quiz ones otherwise.
type courseStore struct{ *memStore }

func (s courseStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return s.GetCourseByID(ctx, id)
}

func (s courseStore) Create(ctx context.Context, c *model.Course) error {
	return s.CreateCourse(ctx, c)
}

// ─── QuizStore ──────────────────────────────────────────────────────

type quizStore struct{ *memStore }

func (s quizStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quizzes[id]
	if !ok {
		return nil, model.ErrQuizNotFound
	}
	cp := *q
	cp.QuestionIDs = append([]uuid.UUID(nil), q.QuestionIDs...)
	return &cp, nil
}

func (s quizStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Quiz
	for _, q := range s.quizzes {
		if q.CourseID == courseID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s quizStore) Create(ctx context.Context, quiz *model.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz.ID = uuid.New()
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt
	cp := *quiz
	s.quizzes[quiz.ID] = &cp
	return nil
}

func (s quizStore) UpdateSettings(ctx context.Context, quiz *model.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[quiz.ID]
	if !ok {
		return model.ErrQuizNotFound
	}
	stored.Title = quiz.Title
	stored.Description = quiz.Description
	stored.MaxAttempts = quiz.MaxAttempts
	stored.PassingScore = quiz.PassingScore
	stored.TimeLimitMinutes = quiz.TimeLimitMinutes
	stored.ShuffleQuestions = quiz.ShuffleQuestions
	stored.ShowResults = quiz.ShowResults
	stored.UpdatedAt = time.Now()
	return nil
}

func (s quizStore) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.quizzes[id]
	if !ok {
		return model.ErrQuizNotFound
	}
	stored.IsPublished = published
	return nil
}

// ─── QuestionStore ──────────────────────────────────────────────────

type questionStore struct{ *memStore }

func (s questionStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, model.ErrQuestionNotFound
	}
	cp := *q
	return &cp, nil
}

func (s questionStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Question
	for _, id := range ids {
		if q, ok := s.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s questionStore) AddToQuiz(ctx context.Context, quizID uuid.UUID, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return model.ErrQuizNotFound
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	cp := *q
	s.questions[q.ID] = &cp
	// Membership guard: an id already present is neither appended again
	// nor counted twice, matching the guarded array_append in SQL.
	if memberOf(quiz.QuestionIDs, q.ID) {
		return nil
	}
	quiz.QuestionIDs = append(quiz.QuestionIDs, q.ID)
	quiz.TotalPoints += q.Points
	return nil
}

func (s questionStore) UpdateInQuiz(ctx context.Context, quizID uuid.UUID, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return model.ErrQuizNotFound
	}
	if !memberOf(quiz.QuestionIDs, q.ID) {
		return model.ErrQuestionNotFound
	}
	stored, ok := s.questions[q.ID]
	if !ok {
		return model.ErrQuestionNotFound
	}
	quiz.TotalPoints += q.Points - stored.Points
	cp := *q
	s.questions[q.ID] = &cp
	return nil
}

func (s questionStore) RemoveFromQuiz(ctx context.Context, quizID, questionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return model.ErrQuestionNotFound
	}
	if !memberOf(quiz.QuestionIDs, questionID) {
		return model.ErrQuestionNotFound
	}
	kept := quiz.QuestionIDs[:0]
	for _, id := range quiz.QuestionIDs {
		if id != questionID {
			kept = append(kept, id)
		}
	}
	quiz.QuestionIDs = kept
	if q, ok := s.questions[questionID]; ok {
		quiz.TotalPoints -= q.Points
		delete(s.questions, questionID)
	}
	return nil
}

func memberOf(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ─── AttemptStore ───────────────────────────────────────────────────

type attemptStore struct{ *memStore }

func (s attemptStore) Create(ctx context.Context, a *model.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.New()
	cp := *a
	s.attempts[a.ID] = &cp
	return nil
}

func (s attemptStore) GetByID(ctx context.Context, id uuid.UUID) (*model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, model.ErrAttemptNotFound
	}
	cp := *a
	return &cp, nil
}

func (s attemptStore) CountByQuizAndLearner(ctx context.Context, quizID uuid.UUID, learnerID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.attempts {
		if a.QuizID == quizID && a.LearnerID == learnerID {
			n++
		}
	}
	return n, nil
}

func (s attemptStore) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuizAttempt
	for _, a := range s.attempts {
		if a.QuizID == quizID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s attemptStore) Transition(ctx context.Context, id uuid.UUID, to model.AttemptStatus, score *int, passed *bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok || a.Status != model.AttemptStatusInProgress {
		return false, nil
	}
	now := time.Now()
	a.Status = to
	a.Score = score
	a.Passed = passed
	a.FinishedAt = &now
	return true, nil
}

func (s attemptStore) AbandonExpired(ctx context.Context, now time.Time) ([]model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuizAttempt
	for _, a := range s.attempts {
		if a.Status == model.AttemptStatusInProgress && a.ExpiresAt != nil && a.ExpiresAt.Before(now) {
			a.Status = model.AttemptStatusAbandoned
			finished := now
			a.FinishedAt = &finished
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s attemptStore) UpsertAnswer(ctx context.Context, ans *model.AttemptAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ans.AnsweredAt = time.Now()
	existing := s.answers[ans.AttemptID]
	for i := range existing {
		if existing[i].QuestionID == ans.QuestionID {
			existing[i] = *ans
			return nil
		}
	}
	s.answers[ans.AttemptID] = append(existing, *ans)
	return nil
}

func (s attemptStore) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.AttemptAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AttemptAnswer(nil), s.answers[attemptID]...), nil
}

// setAttempt overwrites a stored attempt; tests use it to backdate
// expiry deadlines.
func (s *memStore) setAttempt(a model.QuizAttempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := a
	s.attempts[a.ID] = &cp
}

// ─── Event capture ──────────────────────────────────────────────────

type eventRecorder struct {
	mu     sync.Mutex
	events []ws.AttemptEvent
}

func (r *eventRecorder) PublishAttemptEvent(ctx context.Context, event ws.AttemptEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) kinds() []ws.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ws.Event, len(r.events))
	for i, e := range r.events {
		out[i] = e.Event
	}
	return out
}
