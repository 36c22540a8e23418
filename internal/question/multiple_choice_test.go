package question_test

import (
	"testing"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/question"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }
func boolp(b bool) *bool    { return &b }

func mcDraft() *model.QuestionDraft {
	return &model.QuestionDraft{
		Type:   model.QuestionTypeMultipleChoice,
		Text:   strp("Which of these are primary colors?"),
		Points: intp(10),
		Options: []model.QuestionOption{
			{Text: "Red", IsCorrect: true, Order: 1},
			{Text: "Green", IsCorrect: false, Order: 2},
			{Text: "Blue", IsCorrect: true, Order: 3},
		},
	}
}

func mcQuestion(t *testing.T) *model.Question {
	t.Helper()
	p := question.NewMultipleChoiceProvider()
	q, res := question.ValidatedData(p, mcDraft(), question.AuthorContext{TeacherID: 1})
	if !res.IsValid {
		t.Fatalf("draft should validate, got errors: %v", res.Errors)
	}
	return q
}

func TestMultipleChoiceValidateQuestion(t *testing.T) {
	p := question.NewMultipleChoiceProvider()

	tests := []struct {
		name    string
		mutate  func(d *model.QuestionDraft)
		wantErr bool
	}{
		{"valid", func(d *model.QuestionDraft) {}, false},
		{"missing text", func(d *model.QuestionDraft) { d.Text = nil }, true},
		{"blank text", func(d *model.QuestionDraft) { d.Text = strp("   ") }, true},
		{"zero points", func(d *model.QuestionDraft) { d.Points = intp(0) }, true},
		{"one option", func(d *model.QuestionDraft) { d.Options = d.Options[:1] }, true},
		{"blank option text", func(d *model.QuestionDraft) { d.Options[1].Text = " " }, true},
		{"no correct option", func(d *model.QuestionDraft) {
			for i := range d.Options {
				d.Options[i].IsCorrect = false
			}
		}, true},
		{"explicit key without flags", func(d *model.QuestionDraft) {
			for i := range d.Options {
				d.Options[i].IsCorrect = false
			}
			d.CorrectAnswers = []string{"Red"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mcDraft()
			tt.mutate(d)
			res := p.ValidateQuestion(d)
			if res.IsValid == tt.wantErr {
				t.Fatalf("IsValid=%v, want %v (errors: %v)", res.IsValid, !tt.wantErr, res.Errors)
			}
			if !res.IsValid && len(res.Errors) == 0 {
				t.Fatal("invalid result must carry at least one error message")
			}
		})
	}
}

func TestMultipleChoiceCorrectnessIsOrderIndependent(t *testing.T) {
	p := question.NewMultipleChoiceProvider()
	q := mcQuestion(t)

	if !p.IsAnswerCorrect([]string{"Red", "Blue"}, q) {
		t.Fatal("expected [Red Blue] to be correct")
	}
	if !p.IsAnswerCorrect([]string{"Blue", "Red"}, q) {
		t.Fatal("expected [Blue Red] to be correct regardless of order")
	}
}

func TestMultipleChoiceNoPartialCredit(t *testing.T) {
	p := question.NewMultipleChoiceProvider()
	q := mcQuestion(t)

	for _, answer := range [][]string{
		{"Red"},
		{"Red", "Green"},
		{"Red", "Blue", "Green"},
		{},
	} {
		if p.IsAnswerCorrect(answer, q) {
			t.Fatalf("answer %v should not be correct", answer)
		}
		if got := p.CalculateScore(answer, q); got != 0 {
			t.Fatalf("answer %v scored %d, want 0", answer, got)
		}
	}

	if got := p.CalculateScore([]string{"Blue", "Red"}, q); got != 10 {
		t.Fatalf("correct answer scored %d, want 10", got)
	}
}

func TestMultipleChoiceValidateAnswer(t *testing.T) {
	p := question.NewMultipleChoiceProvider()
	q := mcQuestion(t)

	if res := p.ValidateAnswer(nil, q); res.IsValid {
		t.Fatal("nil answer must be invalid")
	}
	if res := p.ValidateAnswer([]string{" Red ", "Blue"}, q); !res.IsValid {
		t.Fatalf("expected valid answer, got %v", res.Errors)
	} else if res.NormalizedAnswer[0] != "Red" {
		t.Fatalf("expected trimmed normalization, got %q", res.NormalizedAnswer[0])
	}
	if res := p.ValidateAnswer([]string{"Red", "  "}, q); res.IsValid {
		t.Fatal("blank answer value must be invalid")
	}
}

func TestMultipleChoiceKeyDerivedFromOptions(t *testing.T) {
	q := mcQuestion(t)

	want := map[string]bool{"Red": true, "Blue": true}
	if len(q.CorrectAnswers) != 2 {
		t.Fatalf("expected 2 derived correct answers, got %v", q.CorrectAnswers)
	}
	for _, a := range q.CorrectAnswers {
		if !want[a] {
			t.Fatalf("unexpected derived answer %q", a)
		}
	}
}

func TestMultipleChoiceProcessForDisplay(t *testing.T) {
	p := question.NewMultipleChoiceProvider()
	q := mcQuestion(t)
	q.Explanation = "Primary colors of light."

	shown := p.ProcessForDisplay(*q, true)
	if shown.CorrectAnswers != nil {
		t.Fatal("display copy must not carry the answer key")
	}
	if shown.Explanation != "" {
		t.Fatal("display copy must not carry the explanation")
	}
	for _, opt := range shown.Options {
		if opt.IsCorrect {
			t.Fatal("display copy must not flag correct options")
		}
	}

	// Original must be untouched.
	if len(q.CorrectAnswers) == 0 || q.Explanation == "" {
		t.Fatal("source question was mutated by display processing")
	}

	full := p.ProcessForDisplay(*q, false)
	if len(full.CorrectAnswers) == 0 {
		t.Fatal("hideAnswers=false must keep the key")
	}
}
