package question

import (
	"fmt"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// Registry maps question type tags to their providers. It is built once
// at startup, injected where needed, and never mutated afterwards, so it
// is safe for concurrent use without locking.
//
// Lookup failures on the convenience proxies are deliberately permissive:
// callers must not assume a non-zero result implies the type was
// recognized. ValidateQuestion is the exception — it reports the unknown
// type as a validation failure so dispatch stays uniform.
type Registry struct {
	providers map[model.QuestionType]Provider
	order     []model.QuestionType
}

// NewRegistry builds a Registry from a fixed list of providers. Later
// providers with a duplicate type tag replace earlier ones.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[model.QuestionType]Provider, len(providers))}
	for _, p := range providers {
		if _, exists := r.providers[p.Type()]; !exists {
			r.order = append(r.order, p.Type())
		}
		r.providers[p.Type()] = p
	}
	return r
}

// NewDefaultRegistry builds a Registry with every built-in provider.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewMultipleChoiceProvider(),
		NewShortAnswerProvider(),
		NewTrueFalseProvider(),
	)
}

// Get returns the provider for a type tag.
func (r *Registry) Get(t model.QuestionType) (Provider, bool) {
	p, ok := r.providers[t]
	return p, ok
}

// SupportedTypes returns all registered type tags in registration order.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, len(r.order))
	for i, t := range r.order {
		types[i] = string(t)
	}
	return types
}

// ValidateQuestion dispatches to the draft's provider. An unregistered
// type is reported as a validation failure, not an error.
func (r *Registry) ValidateQuestion(draft *model.QuestionDraft) ValidationResult {
	p, ok := r.Get(draft.Type)
	if !ok {
		return ValidationResult{
			IsValid: false,
			Errors:  []string{fmt.Sprintf("Unsupported question type: %s", draft.Type)},
		}
	}
	return p.ValidateQuestion(draft)
}

// CalculateScore proxies to the question's provider; unknown types score 0.
func (r *Registry) CalculateScore(answer []string, q *model.Question) int {
	p, ok := r.Get(q.Type)
	if !ok {
		return 0
	}
	return p.CalculateScore(answer, q)
}

// ProcessForDisplay proxies to the question's provider; unknown types
// pass through unmodified.
func (r *Registry) ProcessForDisplay(q model.Question, hideAnswers bool) model.Question {
	p, ok := r.Get(q.Type)
	if !ok {
		return q
	}
	return p.ProcessForDisplay(q, hideAnswers)
}

// DefaultSettings proxies to the provider; unknown types get empty
// settings.
func (r *Registry) DefaultSettings(t model.QuestionType) model.QuestionSettings {
	p, ok := r.Get(t)
	if !ok {
		return model.QuestionSettings{}
	}
	return p.DefaultSettings()
}

// Metadata proxies to the provider; unknown types return nil.
func (r *Registry) Metadata(t model.QuestionType) *TypeMetadata {
	p, ok := r.Get(t)
	if !ok {
		return nil
	}
	md := p.Metadata()
	return &md
}
