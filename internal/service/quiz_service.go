package service

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/question"
)

// QuizService handles quiz lifecycle and the learner-facing paper.
type QuizService struct {
	quizzes   QuizStore
	questions QuestionStore
	courses   CourseStore
	registry  *question.Registry
	papers    *PaperCache
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizzes QuizStore, questions QuestionStore, courses CourseStore, registry *question.Registry, papers *PaperCache) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		questions: questions,
		courses:   courses,
		registry:  registry,
		papers:    papers,
	}
}

// Create adds a quiz to a course the teacher owns. New quizzes start
// unpublished with no questions and zero total points.
func (s *QuizService) Create(ctx context.Context, teacherID int, courseID uuid.UUID, req *model.CreateQuizRequest) (*model.Quiz, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, model.ErrNotOwner
	}

	showResults := true
	if req.ShowResults != nil {
		showResults = *req.ShowResults
	}

	quiz := &model.Quiz{
		CourseID:         courseID,
		TeacherID:        teacherID,
		Title:            req.Title,
		Description:      req.Description,
		MaxAttempts:      req.MaxAttempts,
		PassingScore:     req.PassingScore,
		TimeLimitMinutes: req.TimeLimitMinutes,
		ShuffleQuestions: req.ShuffleQuestions,
		ShowResults:      showResults,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Get retrieves a quiz for its owning teacher.
func (s *QuizService) Get(ctx context.Context, teacherID int, quizID uuid.UUID) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.TeacherID != teacherID {
		return nil, model.ErrNotOwner
	}
	return quiz, nil
}

// ListByCourse retrieves a course's quizzes for its owning teacher.
func (s *QuizService) ListByCourse(ctx context.Context, teacherID int, courseID uuid.UUID) ([]model.Quiz, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, model.ErrNotOwner
	}
	return s.quizzes.ListByCourse(ctx, courseID)
}

// Update patches a quiz's settings. Question membership and total points
// are untouched by this path; they only move with their questions.
func (s *QuizService) Update(ctx context.Context, teacherID int, quizID uuid.UUID, req *model.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.Get(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.MaxAttempts != nil {
		quiz.MaxAttempts = *req.MaxAttempts
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = req.TimeLimitMinutes
	}
	if req.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.ShowResults != nil {
		quiz.ShowResults = *req.ShowResults
	}

	if err := s.quizzes.UpdateSettings(ctx, quiz); err != nil {
		return nil, err
	}
	s.papers.Invalidate(ctx, quizID)
	return quiz, nil
}

// SetPublished publishes or unpublishes a quiz. Learners can only start
// attempts at published quizzes.
func (s *QuizService) SetPublished(ctx context.Context, teacherID int, quizID uuid.UUID, published bool) (*model.Quiz, error) {
	quiz, err := s.Get(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if err := s.quizzes.SetPublished(ctx, quizID, published); err != nil {
		return nil, err
	}
	quiz.IsPublished = published
	s.papers.Invalidate(ctx, quizID)
	return quiz, nil
}

// GetPaper renders the learner-facing paper of a published quiz:
// questions in quiz order with answer keys stripped, served from the
// Redis cache when possible. Shuffling, when enabled, happens on a copy
// after the cache so every learner still draws a fresh order.
func (s *QuizService) GetPaper(ctx context.Context, quizID uuid.UUID) (*model.QuizPaper, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, model.ErrQuizNotPublished
	}

	paper := s.papers.Get(ctx, quizID)
	if paper == nil {
		paper, err = s.buildPaper(ctx, quiz)
		if err != nil {
			return nil, err
		}
		s.papers.Set(ctx, paper)
	}

	if quiz.ShuffleQuestions {
		shuffled := make([]model.Question, len(paper.Questions))
		copy(shuffled, paper.Questions)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		paper.Questions = shuffled
	}

	return paper, nil
}

func (s *QuizService) buildPaper(ctx context.Context, quiz *model.Quiz) (*model.QuizPaper, error) {
	questions, err := s.questions.ListByIDs(ctx, quiz.QuestionIDs)
	if err != nil {
		return nil, err
	}

	display := make([]model.Question, len(questions))
	for i, q := range questions {
		display[i] = s.registry.ProcessForDisplay(q, true)
	}

	return &model.QuizPaper{
		QuizID:           quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		TotalPoints:      quiz.TotalPoints,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		Questions:        display,
	}, nil
}
