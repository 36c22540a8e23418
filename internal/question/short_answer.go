package question

import (
	"fmt"
	"strings"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// Short answer length bounds applied when the author sets none.
const (
	defaultMinAnswerLength = 1
	defaultMaxAnswerLength = 500
)

// ShortAnswerProvider handles free-text questions graded against a list
// of accepted answers. Comparison is trimmed and, unless the author opts
// into case sensitivity, case-insensitive.
type ShortAnswerProvider struct{}

// NewShortAnswerProvider creates a new ShortAnswerProvider.
func NewShortAnswerProvider() *ShortAnswerProvider {
	return &ShortAnswerProvider{}
}

func (p *ShortAnswerProvider) Type() model.QuestionType {
	return model.QuestionTypeShortAnswer
}

func (p *ShortAnswerProvider) Metadata() TypeMetadata {
	return TypeMetadata{
		Type:        model.QuestionTypeShortAnswer,
		DisplayName: "Short Answer",
		Description: "Type a free-text answer matched against accepted answers.",
	}
}

// ValidateQuestion checks the base schema plus the short_answer
// extension: at least one non-empty accepted answer and coherent length
// bounds.
func (p *ShortAnswerProvider) ValidateQuestion(draft *model.QuestionDraft) ValidationResult {
	errs := validateBase(draft)

	if len(p.answerKey(draft)) == 0 {
		errs = append(errs, "At least one correct answer is required")
	}
	for i, a := range draft.CorrectAnswers {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, fmt.Sprintf("Correct answer %d must not be empty", i+1))
		}
	}

	if s := draft.Settings; s != nil {
		if s.MinAnswerLength != nil && *s.MinAnswerLength < 1 {
			errs = append(errs, "Minimum answer length must be at least 1")
		}
		if s.MinAnswerLength != nil && s.MaxAnswerLength != nil && *s.MinAnswerLength > *s.MaxAnswerLength {
			errs = append(errs, "Minimum answer length cannot exceed maximum answer length")
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateAnswer enforces the question's length bounds on every submitted
// string and normalizes by trimming surrounding whitespace.
func (p *ShortAnswerProvider) ValidateAnswer(answer []string, q *model.Question) AnswerValidation {
	if len(answer) == 0 {
		return AnswerValidation{IsValid: false, Errors: []string{"Answer is required"}}
	}

	minLen, maxLen := p.lengthBounds(q)

	var errs []string
	normalized := make([]string, 0, len(answer))
	for _, a := range answer {
		trimmed := strings.TrimSpace(a)
		if len(trimmed) < minLen {
			errs = append(errs, fmt.Sprintf("Answer must be at least %d characters", minLen))
			continue
		}
		if len(trimmed) > maxLen {
			errs = append(errs, fmt.Sprintf("Answer must be at most %d characters", maxLen))
			continue
		}
		normalized = append(normalized, trimmed)
	}
	if len(errs) > 0 {
		return AnswerValidation{IsValid: false, Errors: errs}
	}
	return AnswerValidation{IsValid: true, NormalizedAnswer: normalized}
}

// IsAnswerCorrect reports whether any submitted string matches any
// accepted answer, both trimmed, honoring the case_sensitive setting
// (default false).
func (p *ShortAnswerProvider) IsAnswerCorrect(answer []string, q *model.Question) bool {
	if len(answer) == 0 {
		return false
	}

	caseSensitive := q.Settings.CaseSensitive != nil && *q.Settings.CaseSensitive

	for _, a := range answer {
		got := strings.TrimSpace(a)
		for _, accepted := range q.CorrectAnswers {
			want := strings.TrimSpace(accepted)
			if caseSensitive {
				if got == want {
					return true
				}
			} else if strings.EqualFold(got, want) {
				return true
			}
		}
	}
	return false
}

func (p *ShortAnswerProvider) CalculateScore(answer []string, q *model.Question) int {
	if p.IsAnswerCorrect(answer, q) {
		return q.Points
	}
	return 0
}

func (p *ShortAnswerProvider) ProcessForDisplay(q model.Question, hideAnswers bool) model.Question {
	if !hideAnswers {
		return q
	}
	return stripAnswers(q)
}

func (p *ShortAnswerProvider) DefaultSettings() model.QuestionSettings {
	return model.QuestionSettings{
		ShuffleOptions:  boolPtr(true),
		CaseSensitive:   boolPtr(false),
		MinAnswerLength: intPtr(defaultMinAnswerLength),
		MaxAnswerLength: intPtr(defaultMaxAnswerLength),
	}
}

func (p *ShortAnswerProvider) answerKey(draft *model.QuestionDraft) []string {
	var key []string
	for _, a := range draft.CorrectAnswers {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			key = append(key, trimmed)
		}
	}
	return key
}

func (p *ShortAnswerProvider) lengthBounds(q *model.Question) (int, int) {
	minLen, maxLen := defaultMinAnswerLength, defaultMaxAnswerLength
	if q.Settings.MinAnswerLength != nil {
		minLen = *q.Settings.MinAnswerLength
	}
	if q.Settings.MaxAnswerLength != nil {
		maxLen = *q.Settings.MaxAnswerLength
	}
	return minLen, maxLen
}
