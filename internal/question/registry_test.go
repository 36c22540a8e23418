package question_test

import (
	"reflect"
	"testing"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/question"
)

func TestRegistrySupportedTypes(t *testing.T) {
	r := question.NewDefaultRegistry()

	got := r.SupportedTypes()
	want := []string{"multiple_choice", "short_answer", "true_false"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("supported types %v, want %v", got, want)
	}
}

func TestRegistryGet(t *testing.T) {
	r := question.NewDefaultRegistry()

	if _, ok := r.Get(model.QuestionTypeShortAnswer); !ok {
		t.Fatal("short_answer should be registered")
	}
	if _, ok := r.Get("essay"); ok {
		t.Fatal("essay should not be registered")
	}
}

func TestRegistryValidateUnsupportedType(t *testing.T) {
	r := question.NewDefaultRegistry()

	res := r.ValidateQuestion(&model.QuestionDraft{Type: "essay"})
	if res.IsValid {
		t.Fatal("unsupported type must fail validation")
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Unsupported question type: essay" {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestRegistryPermissiveFallbacks(t *testing.T) {
	r := question.NewDefaultRegistry()
	unknown := model.Question{Type: "essay", Text: "Explain.", Points: 4, CorrectAnswers: []string{"x"}}

	if got := r.CalculateScore([]string{"x"}, &unknown); got != 0 {
		t.Fatalf("unknown type scored %d, want 0", got)
	}
	if got := r.ProcessForDisplay(unknown, true); !reflect.DeepEqual(got, unknown) {
		t.Fatal("unknown type must pass through display processing unmodified")
	}
	if got := r.DefaultSettings("essay"); !reflect.DeepEqual(got, model.QuestionSettings{}) {
		t.Fatalf("unknown type settings %+v, want empty", got)
	}
	if md := r.Metadata("essay"); md != nil {
		t.Fatalf("unknown type metadata %+v, want nil", md)
	}
}

func TestRegistryMetadata(t *testing.T) {
	r := question.NewDefaultRegistry()

	md := r.Metadata(model.QuestionTypeMultipleChoice)
	if md == nil || md.DisplayName != "Multiple Choice" || md.Type != model.QuestionTypeMultipleChoice {
		t.Fatalf("unexpected metadata: %+v", md)
	}
}

func TestRegistrySubsetConstruction(t *testing.T) {
	r := question.NewRegistry(question.NewTrueFalseProvider())

	if got := r.SupportedTypes(); len(got) != 1 || got[0] != "true_false" {
		t.Fatalf("subset registry types %v, want [true_false]", got)
	}
	res := r.ValidateQuestion(&model.QuestionDraft{Type: model.QuestionTypeMultipleChoice})
	if res.IsValid {
		t.Fatal("type outside the subset must be unsupported")
	}
}
