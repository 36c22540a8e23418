package question

import (
	"strings"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// ValidationResult reports whether an authored question satisfies its
// type's schema. Errors are flat, human-readable messages; any violation
// fails the whole check.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// AnswerValidation reports whether a submitted answer is acceptable for a
// question. On success NormalizedAnswer carries the canonical form used
// for persistence and comparison.
type AnswerValidation struct {
	IsValid          bool     `json:"is_valid"`
	Errors           []string `json:"errors,omitempty"`
	NormalizedAnswer []string `json:"normalized_answer,omitempty"`
}

// ScoringResult combines correctness, the awarded score, and a feedback
// string for one graded answer.
type ScoringResult struct {
	IsCorrect bool   `json:"is_correct"`
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
}

// TypeMetadata describes a question type for display purposes.
type TypeMetadata struct {
	Type        model.QuestionType `json:"type"`
	DisplayName string             `json:"display_name"`
	Description string             `json:"description"`
}

// AuthorContext carries the contextual identity merged into a question on
// the create path.
type AuthorContext struct {
	CourseID  uuid.UUID
	TeacherID int
}

// Feedback strings returned by GradeAnswer.
const (
	FeedbackCorrect   = "Correct!"
	FeedbackIncorrect = "Incorrect"
)

const defaultPoints = 1

// Provider owns all type-specific semantics for one question type:
// schema validation, answer normalization, and grading. Implementations
// must be stateless; grading must be deterministic and pure given its
// inputs. The unexported answerKey method keeps the set of providers
// closed to this package.
type Provider interface {
	Type() model.QuestionType
	Metadata() TypeMetadata
	ValidateQuestion(draft *model.QuestionDraft) ValidationResult
	ValidateAnswer(answer []string, q *model.Question) AnswerValidation
	IsAnswerCorrect(answer []string, q *model.Question) bool
	CalculateScore(answer []string, q *model.Question) int
	ProcessForDisplay(q model.Question, hideAnswers bool) model.Question
	DefaultSettings() model.QuestionSettings

	// answerKey derives the persisted answer key from a validated draft.
	answerKey(draft *model.QuestionDraft) []string
}

// GradeAnswer wraps correctness and scoring into a single result with a
// fixed feedback string. Scoring is binary: full points or zero.
func GradeAnswer(p Provider, answer []string, q *model.Question) ScoringResult {
	if p.IsAnswerCorrect(answer, q) {
		return ScoringResult{IsCorrect: true, Score: q.Points, Feedback: FeedbackCorrect}
	}
	return ScoringResult{IsCorrect: false, Score: 0, Feedback: FeedbackIncorrect}
}

// ValidatedData is the production create path: merges the author context
// into the draft, validates against the base+specific schema, then fills
// unset fields from the provider defaults (authored values win).
func ValidatedData(p Provider, draft *model.QuestionDraft, ctx AuthorContext) (*model.Question, ValidationResult) {
	res := p.ValidateQuestion(draft)
	if !res.IsValid {
		return nil, res
	}

	q := &model.Question{
		CourseID:       ctx.CourseID,
		TeacherID:      ctx.TeacherID,
		Type:           p.Type(),
		Text:           strings.TrimSpace(strVal(draft.Text)),
		Points:         defaultPoints,
		Explanation:    strVal(draft.Explanation),
		Options:        draft.Options,
		CorrectAnswers: p.answerKey(draft),
		Settings:       overlaySettings(p.DefaultSettings(), draft.Settings),
	}
	if draft.Points != nil {
		q.Points = *draft.Points
	}
	return q, res
}

// ValidatedUpdateData is the production update path: merges the existing
// persisted fields with the patch, revalidates the merged result against
// the same type's schema, and returns the merged question. The question
// type itself is immutable; callers resolve the provider from the
// existing record.
func ValidatedUpdateData(p Provider, existing *model.Question, patch *model.QuestionDraft) (*model.Question, ValidationResult) {
	merged := mergeDraft(p, existing, patch)

	res := p.ValidateQuestion(merged)
	if !res.IsValid {
		return nil, res
	}

	updated := *existing
	updated.Text = strings.TrimSpace(strVal(merged.Text))
	updated.Points = *merged.Points
	updated.Explanation = strVal(merged.Explanation)
	updated.Options = merged.Options
	updated.CorrectAnswers = p.answerKey(merged)
	updated.Settings = overlaySettings(p.DefaultSettings(), merged.Settings)
	return &updated, res
}

// mergeDraft lifts the existing question back into draft shape and lays
// the patch on top. Absent patch fields keep their persisted values.
func mergeDraft(p Provider, existing *model.Question, patch *model.QuestionDraft) *model.QuestionDraft {
	merged := &model.QuestionDraft{
		Type:           existing.Type,
		Text:           strPtr(existing.Text),
		Points:         intPtr(existing.Points),
		Explanation:    strPtr(existing.Explanation),
		Options:        existing.Options,
		CorrectAnswers: existing.CorrectAnswers,
	}
	settings := existing.Settings
	merged.Settings = &settings

	if existing.Type == model.QuestionTypeTrueFalse && len(existing.CorrectAnswers) > 0 {
		v := existing.CorrectAnswers[0] == "true"
		merged.CorrectAnswer = &v
	}

	if patch == nil {
		return merged
	}
	if patch.Text != nil {
		merged.Text = patch.Text
	}
	if patch.Points != nil {
		merged.Points = patch.Points
	}
	if patch.Explanation != nil {
		merged.Explanation = patch.Explanation
	}
	if patch.Options != nil {
		merged.Options = patch.Options
		// A new option set invalidates the key carried from the old one.
		// Unless the patch resupplies correct_answers explicitly, the key
		// re-derives from the new isCorrect flags, keeping display and
		// grading in agreement.
		merged.CorrectAnswers = nil
	}
	if patch.CorrectAnswers != nil {
		merged.CorrectAnswers = patch.CorrectAnswers
	}
	if patch.CorrectAnswer != nil {
		merged.CorrectAnswer = patch.CorrectAnswer
	}
	if patch.Settings != nil {
		overlaid := overlaySettings(existing.Settings, patch.Settings)
		merged.Settings = &overlaid
	}
	return merged
}

// validateBase checks the type-agnostic schema shared by every provider:
// non-empty text, points >= 1 when supplied, explanation optional.
func validateBase(draft *model.QuestionDraft) []string {
	var errs []string
	if draft.Text == nil || strings.TrimSpace(*draft.Text) == "" {
		errs = append(errs, "Question text is required")
	}
	if draft.Points != nil && *draft.Points < 1 {
		errs = append(errs, "Points must be at least 1")
	}
	return errs
}

// stripAnswers removes the answer key fields from a question copy for
// rendering to a learner who must not see the key.
func stripAnswers(q model.Question) model.Question {
	q.CorrectAnswers = nil
	q.Explanation = ""
	if q.Options != nil {
		opts := make([]model.QuestionOption, len(q.Options))
		for i, o := range q.Options {
			o.IsCorrect = false
			opts[i] = o
		}
		q.Options = opts
	}
	return q
}

// overlaySettings returns base with every non-nil field of over applied
// on top.
func overlaySettings(base model.QuestionSettings, over *model.QuestionSettings) model.QuestionSettings {
	if over == nil {
		return base
	}
	if over.ShuffleOptions != nil {
		base.ShuffleOptions = over.ShuffleOptions
	}
	if over.CaseSensitive != nil {
		base.CaseSensitive = over.CaseSensitive
	}
	if over.MinAnswerLength != nil {
		base.MinAnswerLength = over.MinAnswerLength
	}
	if over.MaxAnswerLength != nil {
		base.MaxAnswerLength = over.MaxAnswerLength
	}
	return base
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }
