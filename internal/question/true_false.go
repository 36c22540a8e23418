package question

import (
	"strings"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// TrueFalseProvider handles boolean questions. Answers are normalized to
// the one-element arrays ["true"] / ["false"] so grading shares the
// []string answer shape used by every other provider; the authored key
// is stored the same way.
type TrueFalseProvider struct{}

// NewTrueFalseProvider creates a new TrueFalseProvider.
func NewTrueFalseProvider() *TrueFalseProvider {
	return &TrueFalseProvider{}
}

func (p *TrueFalseProvider) Type() model.QuestionType {
	return model.QuestionTypeTrueFalse
}

func (p *TrueFalseProvider) Metadata() TypeMetadata {
	return TypeMetadata{
		Type:        model.QuestionTypeTrueFalse,
		DisplayName: "True / False",
		Description: "Decide whether the statement is true or false.",
	}
}

// ValidateQuestion checks the base schema and requires the boolean
// correct_answer field.
func (p *TrueFalseProvider) ValidateQuestion(draft *model.QuestionDraft) ValidationResult {
	errs := validateBase(draft)

	if draft.CorrectAnswer == nil {
		errs = append(errs, "A correct answer (true or false) is required")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateAnswer accepts exactly one value parseable as a boolean and
// normalizes it to "true" or "false".
func (p *TrueFalseProvider) ValidateAnswer(answer []string, q *model.Question) AnswerValidation {
	if len(answer) == 0 {
		return AnswerValidation{IsValid: false, Errors: []string{"Answer is required"}}
	}
	if len(answer) != 1 {
		return AnswerValidation{IsValid: false, Errors: []string{"Answer must contain exactly one value"}}
	}

	normalized, ok := normalizeBool(answer[0])
	if !ok {
		return AnswerValidation{IsValid: false, Errors: []string{`Answer must be "true" or "false"`}}
	}
	return AnswerValidation{IsValid: true, NormalizedAnswer: []string{normalized}}
}

func (p *TrueFalseProvider) IsAnswerCorrect(answer []string, q *model.Question) bool {
	if len(answer) != 1 || len(q.CorrectAnswers) == 0 {
		return false
	}
	normalized, ok := normalizeBool(answer[0])
	if !ok {
		return false
	}
	return normalized == q.CorrectAnswers[0]
}

func (p *TrueFalseProvider) CalculateScore(answer []string, q *model.Question) int {
	if p.IsAnswerCorrect(answer, q) {
		return q.Points
	}
	return 0
}

func (p *TrueFalseProvider) ProcessForDisplay(q model.Question, hideAnswers bool) model.Question {
	if !hideAnswers {
		return q
	}
	return stripAnswers(q)
}

func (p *TrueFalseProvider) DefaultSettings() model.QuestionSettings {
	return model.QuestionSettings{ShuffleOptions: boolPtr(true)}
}

func (p *TrueFalseProvider) answerKey(draft *model.QuestionDraft) []string {
	if draft.CorrectAnswer == nil {
		return nil
	}
	if *draft.CorrectAnswer {
		return []string{"true"}
	}
	return []string{"false"}
}

func normalizeBool(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return "true", true
	case "false":
		return "false", true
	default:
		return "", false
	}
}
