package question

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// MultipleChoiceProvider handles questions answered by selecting one or
// more of a fixed set of options. Correctness is set equality against the
// answer key; there is no credit for partial overlap.
type MultipleChoiceProvider struct{}

// NewMultipleChoiceProvider creates a new MultipleChoiceProvider.
func NewMultipleChoiceProvider() *MultipleChoiceProvider {
	return &MultipleChoiceProvider{}
}

func (p *MultipleChoiceProvider) Type() model.QuestionType {
	return model.QuestionTypeMultipleChoice
}

func (p *MultipleChoiceProvider) Metadata() TypeMetadata {
	return TypeMetadata{
		Type:        model.QuestionTypeMultipleChoice,
		DisplayName: "Multiple Choice",
		Description: "Select one or more correct options from a fixed list.",
	}
}

// ValidateQuestion checks the base schema plus the multiple_choice
// extension: at least 2 options, no empty option text, and a resolvable
// answer key (explicit correct_answers or at least one option flagged
// correct).
func (p *MultipleChoiceProvider) ValidateQuestion(draft *model.QuestionDraft) ValidationResult {
	errs := validateBase(draft)

	if len(draft.Options) < 2 {
		errs = append(errs, "At least 2 options are required")
	}
	for i, opt := range draft.Options {
		if strings.TrimSpace(opt.Text) == "" {
			errs = append(errs, fmt.Sprintf("Option %d text must not be empty", i+1))
		}
	}

	if len(p.answerKey(draft)) == 0 {
		errs = append(errs, "At least one correct option is required")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateAnswer accepts a non-empty array of non-blank option texts and
// normalizes each entry by trimming surrounding whitespace.
func (p *MultipleChoiceProvider) ValidateAnswer(answer []string, q *model.Question) AnswerValidation {
	if len(answer) == 0 {
		return AnswerValidation{IsValid: false, Errors: []string{"Answer is required"}}
	}

	var errs []string
	normalized := make([]string, 0, len(answer))
	for _, a := range answer {
		trimmed := strings.TrimSpace(a)
		if trimmed == "" {
			errs = append(errs, "Answer values must not be empty")
			continue
		}
		normalized = append(normalized, trimmed)
	}
	if len(errs) > 0 {
		return AnswerValidation{IsValid: false, Errors: errs}
	}
	return AnswerValidation{IsValid: true, NormalizedAnswer: normalized}
}

// IsAnswerCorrect compares the answer to the key as sets: both sides are
// sorted and must match element for element, so submission order never
// matters.
func (p *MultipleChoiceProvider) IsAnswerCorrect(answer []string, q *model.Question) bool {
	if len(answer) == 0 || len(answer) != len(q.CorrectAnswers) {
		return false
	}

	got := make([]string, len(answer))
	for i, a := range answer {
		got[i] = strings.TrimSpace(a)
	}
	want := append([]string(nil), q.CorrectAnswers...)
	sort.Strings(got)
	sort.Strings(want)

	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func (p *MultipleChoiceProvider) CalculateScore(answer []string, q *model.Question) int {
	if p.IsAnswerCorrect(answer, q) {
		return q.Points
	}
	return 0
}

func (p *MultipleChoiceProvider) ProcessForDisplay(q model.Question, hideAnswers bool) model.Question {
	if !hideAnswers {
		return q
	}
	return stripAnswers(q)
}

func (p *MultipleChoiceProvider) DefaultSettings() model.QuestionSettings {
	return model.QuestionSettings{ShuffleOptions: boolPtr(true)}
}

// answerKey prefers an explicitly supplied key and otherwise derives it
// from the options flagged correct.
func (p *MultipleChoiceProvider) answerKey(draft *model.QuestionDraft) []string {
	if len(draft.CorrectAnswers) > 0 {
		key := make([]string, 0, len(draft.CorrectAnswers))
		for _, a := range draft.CorrectAnswers {
			if trimmed := strings.TrimSpace(a); trimmed != "" {
				key = append(key, trimmed)
			}
		}
		return key
	}

	var key []string
	for _, opt := range draft.Options {
		if opt.IsCorrect {
			key = append(key, strings.TrimSpace(opt.Text))
		}
	}
	return key
}
