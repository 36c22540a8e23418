package model

import "errors"

// Sentinel errors shared by repositories and services. Handlers map these
// to response codes; Not Found and ownership failures stay distinct so
// callers can tell "doesn't exist" from "exists but not yours".
var (
	// ErrCourseNotFound indicates the referenced course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrQuizNotFound indicates the referenced quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates the question does not exist or is not
	// a member of the quiz it was addressed through.
	ErrQuestionNotFound = errors.New("question not found in quiz")
	// ErrAttemptNotFound indicates the referenced attempt does not exist.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAttemptTerminal indicates the attempt already completed or was
	// abandoned; terminal attempts accept no further transitions.
	ErrAttemptTerminal = errors.New("attempt is already in a terminal state")
	// ErrAttemptExpired indicates the attempt's deadline has passed.
	ErrAttemptExpired = errors.New("attempt has expired")
	// ErrNotOwner indicates the caller does not own the record it tried
	// to mutate.
	ErrNotOwner = errors.New("caller does not own this resource")
	// ErrQuizNotPublished indicates a learner touched an unpublished quiz.
	ErrQuizNotPublished = errors.New("quiz is not published")
	// ErrMaxAttemptsReached indicates the learner used up the quiz's
	// attempt allowance.
	ErrMaxAttemptsReached = errors.New("maximum attempts reached")
	// ErrUnsupportedQuestionType indicates no provider is registered for
	// the requested type tag.
	ErrUnsupportedQuestionType = errors.New("unsupported question type")
)
