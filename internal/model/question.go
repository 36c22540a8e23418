package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType tags a question with the provider that owns its semantics.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeTrueFalse      QuestionType = "true_false"
)

// QuestionOption is a single selectable choice on a multiple_choice question.
type QuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

// QuestionSettings holds per-type tuning knobs. All fields are optional;
// a provider's defaults fill in anything the author left unset.
type QuestionSettings struct {
	ShuffleOptions  *bool `json:"shuffle_options,omitempty"`
	CaseSensitive   *bool `json:"case_sensitive,omitempty"`
	MinAnswerLength *int  `json:"min_answer_length,omitempty"`
	MaxAnswerLength *int  `json:"max_answer_length,omitempty"`
}

// Question represents a single assessable item. The answer key lives in
// CorrectAnswers regardless of type: multiple_choice stores the correct
// option texts, short_answer the accepted strings, and true_false a
// single normalized "true"/"false" element.
type Question struct {
	ID             uuid.UUID        `json:"id"`
	CourseID       uuid.UUID        `json:"course_id"`
	TeacherID      int              `json:"teacher_id"`
	Type           QuestionType     `json:"question_type"`
	Text           string           `json:"question_text"`
	Points         int              `json:"points"`
	Explanation    string           `json:"explanation,omitempty"`
	Options        []QuestionOption `json:"options,omitempty"`
	CorrectAnswers []string         `json:"correct_answers,omitempty"`
	Settings       QuestionSettings `json:"settings"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// QuestionDraft is a possibly-partial authored question. Pointer fields
// distinguish "absent" from zero values so the same shape serves both
// create payloads and update patches. Field-level validation is owned by
// the question providers, not by binding tags.
type QuestionDraft struct {
	Type           QuestionType      `json:"question_type"`
	Text           *string           `json:"question_text"`
	Points         *int              `json:"points"`
	Explanation    *string           `json:"explanation"`
	Options        []QuestionOption  `json:"options"`
	CorrectAnswers []string          `json:"correct_answers"`
	CorrectAnswer  *bool             `json:"correct_answer"` // true_false only
	Settings       *QuestionSettings `json:"settings"`
}
