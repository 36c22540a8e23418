package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus enumerates quiz attempt states. Transitions are monotonic:
// in_progress may move to completed or abandoned; both are terminal.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusCompleted  AttemptStatus = "completed"
	AttemptStatusAbandoned  AttemptStatus = "abandoned"
)

// Terminal reports whether the status permits no further transitions.
func (s AttemptStatus) Terminal() bool {
	return s == AttemptStatusCompleted || s == AttemptStatusAbandoned
}

// QuizAttempt tracks one learner's engagement with a quiz. Score and
// Passed are filled in when the attempt completes.
type QuizAttempt struct {
	ID         uuid.UUID     `json:"id"`
	QuizID     uuid.UUID     `json:"quiz_id"`
	LearnerID  int           `json:"learner_id"`
	Status     AttemptStatus `json:"status"`
	Score      *int          `json:"score,omitempty"`
	Passed     *bool         `json:"passed,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	ExpiresAt  *time.Time    `json:"expires_at,omitempty"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

// AttemptAnswer is one graded answer within an attempt. Re-answering the
// same question replaces the previous row.
type AttemptAnswer struct {
	AttemptID  uuid.UUID `json:"attempt_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Answer     []string  `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
	Score      int       `json:"score"`
	AnsweredAt time.Time `json:"answered_at"`
}

// CreateAttemptRequest is the payload for starting a quiz attempt.
type CreateAttemptRequest struct {
	QuizID uuid.UUID `json:"quiz_id" binding:"required"`
}

// TransitionAttemptRequest is the payload for moving an attempt to a
// terminal state.
type TransitionAttemptRequest struct {
	Status AttemptStatus `json:"status" binding:"required,oneof=completed abandoned"`
}

// SubmitAnswerRequest is the payload for answering one question during a
// live attempt. Answers are uniformly an array of strings; true_false
// answers are submitted as ["true"] or ["false"].
type SubmitAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Answer     []string  `json:"answer" binding:"required"`
}
