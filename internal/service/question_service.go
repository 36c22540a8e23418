package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/question"
)

// QuestionService handles authoring questions into quizzes. Every write
// goes through the question registry for type-specific validation and
// through the store's transactional linkage so the owning quiz's
// question_ids and total_points stay consistent.
type QuestionService struct {
	quizzes   QuizStore
	questions QuestionStore
	registry  *question.Registry
	papers    *PaperCache
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(quizzes QuizStore, questions QuestionStore, registry *question.Registry, papers *PaperCache) *QuestionService {
	return &QuestionService{
		quizzes:   quizzes,
		questions: questions,
		registry:  registry,
		papers:    papers,
	}
}

// CreateForQuiz validates a draft and adds the resulting question to a
// quiz the teacher owns. A schema violation — including an unsupported
// question type — comes back as a failed ValidationResult with a nil
// question and a nil error; errors are reserved for ownership and
// persistence failures.
func (s *QuestionService) CreateForQuiz(ctx context.Context, teacherID int, quizID uuid.UUID, draft *model.QuestionDraft) (*model.Question, question.ValidationResult, error) {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return nil, question.ValidationResult{}, err
	}

	p, ok := s.registry.Get(draft.Type)
	if !ok {
		return nil, s.registry.ValidateQuestion(draft), nil
	}

	q, res := question.ValidatedData(p, draft, question.AuthorContext{
		CourseID:  quiz.CourseID,
		TeacherID: teacherID,
	})
	if !res.IsValid {
		return nil, res, nil
	}

	if err := s.questions.AddToQuiz(ctx, quizID, q); err != nil {
		return nil, res, err
	}
	s.papers.Invalidate(ctx, quizID)
	return q, res, nil
}

// UpdateForQuiz patches a question addressed through a quiz the teacher
// owns. The question must be a member of that quiz. The question's type
// is immutable; the patch is validated against the existing type's
// schema after merging.
func (s *QuestionService) UpdateForQuiz(ctx context.Context, teacherID int, quizID, questionID uuid.UUID, patch *model.QuestionDraft) (*model.Question, question.ValidationResult, error) {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return nil, question.ValidationResult{}, err
	}
	if !containsID(quiz.QuestionIDs, questionID) {
		return nil, question.ValidationResult{}, model.ErrQuestionNotFound
	}

	existing, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, question.ValidationResult{}, err
	}

	p, ok := s.registry.Get(existing.Type)
	if !ok {
		return nil, question.ValidationResult{}, model.ErrUnsupportedQuestionType
	}

	updated, res := question.ValidatedUpdateData(p, existing, patch)
	if !res.IsValid {
		return nil, res, nil
	}

	if err := s.questions.UpdateInQuiz(ctx, quizID, updated); err != nil {
		return nil, res, err
	}
	s.papers.Invalidate(ctx, quizID)
	return updated, res, nil
}

// DeleteForQuiz unlinks a question from a quiz the teacher owns and
// deletes it. Deleting a question that is not (or no longer) a member
// returns model.ErrQuestionNotFound; the quiz total is never decremented
// twice for the same id.
func (s *QuestionService) DeleteForQuiz(ctx context.Context, teacherID int, quizID, questionID uuid.UUID) error {
	if _, err := s.ownedQuiz(ctx, teacherID, quizID); err != nil {
		return err
	}

	if err := s.questions.RemoveFromQuiz(ctx, quizID, questionID); err != nil {
		return err
	}
	s.papers.Invalidate(ctx, quizID)
	return nil
}

// GetForQuiz retrieves one question of a quiz the teacher owns, with the
// answer key intact.
func (s *QuestionService) GetForQuiz(ctx context.Context, teacherID int, quizID, questionID uuid.UUID) (*model.Question, error) {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}
	if !containsID(quiz.QuestionIDs, questionID) {
		return nil, model.ErrQuestionNotFound
	}
	return s.questions.GetByID(ctx, questionID)
}

// ListForQuiz retrieves a quiz's questions in quiz order, answer keys
// intact, for the owning teacher.
func (s *QuestionService) ListForQuiz(ctx context.Context, teacherID int, quizID uuid.UUID) ([]model.Question, error) {
	quiz, err := s.ownedQuiz(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}
	return s.questions.ListByIDs(ctx, quiz.QuestionIDs)
}

// ValidateDraft runs a draft through its type's schema check without
// persisting anything. Authoring UIs use this for live feedback.
func (s *QuestionService) ValidateDraft(draft *model.QuestionDraft) question.ValidationResult {
	return s.registry.ValidateQuestion(draft)
}

// SupportedTypes returns the registered question type tags.
func (s *QuestionService) SupportedTypes() []string {
	return s.registry.SupportedTypes()
}

// TypeMetadata returns display metadata for one type, or nil when the
// type is not registered.
func (s *QuestionService) TypeMetadata(t model.QuestionType) *question.TypeMetadata {
	return s.registry.Metadata(t)
}

func (s *QuestionService) ownedQuiz(ctx context.Context, teacherID int, quizID uuid.UUID) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.TeacherID != teacherID {
		return nil, model.ErrNotOwner
	}
	return quiz, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
