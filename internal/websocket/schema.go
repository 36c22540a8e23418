package websocket

import (
	"time"

	"github.com/google/uuid"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError            Event = "error"
	EventPong             Event = "pong"
	EventAttemptStarted   Event = "attempt_started"
	EventAnswerSubmitted  Event = "answer_submitted"
	EventAttemptCompleted Event = "attempt_completed"
	EventAttemptAbandoned Event = "attempt_abandoned"
)

// AttemptEvent is pushed to monitoring teachers whenever a learner's
// attempt changes. It is also the payload published on the quiz monitor
// Redis channel, so the struct doubles as the pub/sub wire format.
type AttemptEvent struct {
	Event      Event      `json:"event"`
	QuizID     uuid.UUID  `json:"quiz_id"`
	AttemptID  uuid.UUID  `json:"attempt_id"`
	LearnerID  int        `json:"learner_id"`
	QuestionID *uuid.UUID `json:"question_id,omitempty"`
	Score      *int       `json:"score,omitempty"`
	Passed     *bool      `json:"passed,omitempty"`
	At         time.Time  `json:"at"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
