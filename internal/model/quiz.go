package model

import (
	"time"

	"github.com/google/uuid"
)

// Quiz is an ordered, deduplicated collection of question IDs with a
// maintained aggregate point total. TotalPoints is stored, not computed
// on read: every mutation of the membership or of a member's points must
// apply a matching delta in the same transaction.
type Quiz struct {
	ID               uuid.UUID   `json:"id"`
	CourseID         uuid.UUID   `json:"course_id"`
	TeacherID        int         `json:"teacher_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description,omitempty"`
	QuestionIDs      []uuid.UUID `json:"question_ids"`
	TotalPoints      int         `json:"total_points"`
	MaxAttempts      int         `json:"max_attempts"`
	PassingScore     int         `json:"passing_score"`
	TimeLimitMinutes *int        `json:"time_limit_minutes,omitempty"`
	ShuffleQuestions bool        `json:"shuffle_questions"`
	ShowResults      bool        `json:"show_results"`
	IsPublished      bool        `json:"is_published"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// CreateQuizRequest is the payload for creating a new quiz.
type CreateQuizRequest struct {
	Title            string `json:"title" binding:"required,min=3,max=255"`
	Description      string `json:"description" binding:"omitempty,max=2000"`
	MaxAttempts      int    `json:"max_attempts" binding:"min=0"`
	PassingScore     int    `json:"passing_score" binding:"min=0"`
	TimeLimitMinutes *int   `json:"time_limit_minutes" binding:"omitempty,min=1,max=480"`
	ShuffleQuestions bool   `json:"shuffle_questions"`
	ShowResults      *bool  `json:"show_results"`
}

// UpdateQuizRequest is the payload for updating quiz settings. Question
// membership and point totals are never touched through this path.
type UpdateQuizRequest struct {
	Title            string  `json:"title" binding:"omitempty,min=3,max=255"`
	Description      *string `json:"description" binding:"omitempty,max=2000"`
	MaxAttempts      *int    `json:"max_attempts" binding:"omitempty,min=0"`
	PassingScore     *int    `json:"passing_score" binding:"omitempty,min=0"`
	TimeLimitMinutes *int    `json:"time_limit_minutes" binding:"omitempty,min=1,max=480"`
	ShuffleQuestions *bool   `json:"shuffle_questions"`
	ShowResults      *bool   `json:"show_results"`
}

// QuizPaper is the learner-facing rendering of a quiz: questions with
// answer keys stripped. This is what gets cached in Redis.
type QuizPaper struct {
	QuizID           uuid.UUID  `json:"quiz_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	TotalPoints      int        `json:"total_points"`
	TimeLimitMinutes *int       `json:"time_limit_minutes,omitempty"`
	Questions        []Question `json:"questions"`
}
