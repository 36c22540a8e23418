package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/question"
	"github.com/brightclass/brightclass-backend/internal/service"
	ws "github.com/brightclass/brightclass-backend/internal/websocket"
)

const learnerID = 42

// seedPublishedQuiz builds a published quiz with one short_answer
// question worth 10 points ("Paris") and returns both.
func (e *env) seedPublishedQuiz(t *testing.T, mutate func(*model.UpdateQuizRequest)) (*model.Quiz, *model.Question) {
	t.Helper()
	ctx := context.Background()
	quiz := e.seedQuiz(t)

	q, res, err := e.questions.CreateForQuiz(ctx, ownerID, quiz.ID, saDraft("Capital of France?", 10, "Paris"))
	if err != nil || !res.IsValid {
		t.Fatalf("seed question: err=%v errors=%v", err, res.Errors)
	}

	if mutate != nil {
		req := &model.UpdateQuizRequest{}
		mutate(req)
		if _, err := e.quizzes.Update(ctx, ownerID, quiz.ID, req); err != nil {
			t.Fatalf("configure quiz: %v", err)
		}
	}
	if _, err := e.quizzes.SetPublished(ctx, ownerID, quiz.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	return e.quizState(t, quiz.ID), q
}

func TestStartRequiresPublishedQuiz(t *testing.T) {
	e := newEnv(t)
	quiz := e.seedQuiz(t)

	if _, err := e.attempts.Start(context.Background(), learnerID, quiz.ID); err != model.ErrQuizNotPublished {
		t.Fatalf("err = %v, want ErrQuizNotPublished", err)
	}
}

func TestStartEnforcesMaxAttempts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, _ := e.seedPublishedQuiz(t, func(req *model.UpdateQuizRequest) {
		req.MaxAttempts = intp(2)
	})

	for i := 0; i < 2; i++ {
		if _, err := e.attempts.Start(ctx, learnerID, quiz.ID); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	if _, err := e.attempts.Start(ctx, learnerID, quiz.ID); err != model.ErrMaxAttemptsReached {
		t.Fatalf("third attempt err = %v, want ErrMaxAttemptsReached", err)
	}

	// Another learner's allowance is independent.
	if _, err := e.attempts.Start(ctx, learnerID+1, quiz.ID); err != nil {
		t.Fatalf("other learner blocked: %v", err)
	}
}

func TestStartSetsExpiryFromTimeLimit(t *testing.T) {
	e := newEnv(t)
	quiz, _ := e.seedPublishedQuiz(t, func(req *model.UpdateQuizRequest) {
		req.TimeLimitMinutes = intp(30)
	})

	attempt, err := e.attempts.Start(context.Background(), learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if attempt.ExpiresAt == nil {
		t.Fatal("expires_at not set despite time limit")
	}
	want := attempt.StartedAt.Add(30 * time.Minute)
	if !attempt.ExpiresAt.Equal(want) {
		t.Fatalf("expires_at = %v, want %v", attempt.ExpiresAt, want)
	}
}

func TestSubmitAnswerGradesCaseInsensitively(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, nil)

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	result, err := e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: q.ID,
		Answer:     []string{"paris"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Answer.IsCorrect || result.Answer.Score != 10 {
		t.Fatalf("graded = %+v, want correct for 10", result.Answer)
	}
	if result.Feedback == nil || result.Feedback.Feedback != question.FeedbackCorrect {
		t.Fatalf("feedback = %+v, want %q", result.Feedback, question.FeedbackCorrect)
	}
}

func TestSubmitAnswerReplacesEarlierAnswer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, nil)

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for _, ans := range []string{"Lyon", "Paris"} {
		if _, err := e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
			QuestionID: q.ID,
			Answer:     []string{ans},
		}); err != nil {
			t.Fatalf("submit %q: %v", ans, err)
		}
	}

	answers, err := e.attempts.ListAnswers(ctx, learnerID, attempt.ID)
	if err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("answers = %d rows, want 1", len(answers))
	}
	if !answers[0].IsCorrect {
		t.Fatal("latest answer should have replaced the wrong one")
	}
}

func TestSubmitAnswerHidesGradingWhenResultsHidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, func(req *model.UpdateQuizRequest) {
		req.ShowResults = boolp(false)
	})

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	result, err := e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: q.ID,
		Answer:     []string{"Paris"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Feedback != nil {
		t.Fatalf("feedback leaked: %+v", result.Feedback)
	}
	if result.Answer.IsCorrect || result.Answer.Score != 0 {
		t.Fatalf("grading leaked: %+v", result.Answer)
	}

	// The stored row still carries the real grade; completion uses it.
	updated, err := e.attempts.Transition(ctx, learnerID, attempt.ID, model.AttemptStatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Score == nil || *updated.Score != 10 {
		t.Fatalf("score = %v, want 10", updated.Score)
	}
}

func TestSubmitAnswerRejectsUnknownQuestion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, _ := e.seedPublishedQuiz(t, nil)

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	other := e.seedQuiz(t)
	foreign, _, err := e.questions.CreateForQuiz(ctx, ownerID, other.ID, saDraft("Capital of Peru?", 5, "Lima"))
	if err != nil {
		t.Fatalf("seed foreign question: %v", err)
	}

	_, err = e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: foreign.ID,
		Answer:     []string{"Lima"},
	})
	if err != model.ErrQuestionNotFound {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestSubmitAnswerValidationFailureSurfaces(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, nil)

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err = e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: q.ID,
		Answer:     []string{"   "},
	})
	var rejected *service.AnswerRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want AnswerRejectedError", err)
	}
	if len(rejected.Errors) == 0 {
		t.Fatal("rejection carries no messages")
	}
}

func TestCompletionScoresAgainstPassingScore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		answer     string
		wantScore  int
		wantPassed bool
	}{
		{"passing", "Paris", 10, true},
		{"failing", "Lyon", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz, q := e.seedPublishedQuiz(t, func(req *model.UpdateQuizRequest) {
				req.PassingScore = intp(10)
			})

			attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			if _, err := e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
				QuestionID: q.ID,
				Answer:     []string{tt.answer},
			}); err != nil {
				t.Fatalf("submit: %v", err)
			}

			updated, err := e.attempts.Transition(ctx, learnerID, attempt.ID, model.AttemptStatusCompleted)
			if err != nil {
				t.Fatalf("complete: %v", err)
			}
			if updated.Status != model.AttemptStatusCompleted {
				t.Fatalf("status = %s", updated.Status)
			}
			if updated.Score == nil || *updated.Score != tt.wantScore {
				t.Fatalf("score = %v, want %d", updated.Score, tt.wantScore)
			}
			if updated.Passed == nil || *updated.Passed != tt.wantPassed {
				t.Fatalf("passed = %v, want %v", updated.Passed, tt.wantPassed)
			}
			if updated.FinishedAt == nil {
				t.Fatal("finished_at not set")
			}
		})
	}
}

func TestTerminalAttemptRejectsEverything(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, nil)

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.attempts.Transition(ctx, learnerID, attempt.ID, model.AttemptStatusAbandoned); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	if _, err := e.attempts.Transition(ctx, learnerID, attempt.ID, model.AttemptStatusCompleted); err != model.ErrAttemptTerminal {
		t.Fatalf("re-transition err = %v, want ErrAttemptTerminal", err)
	}
	if _, err := e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: q.ID,
		Answer:     []string{"Paris"},
	}); err != model.ErrAttemptTerminal {
		t.Fatalf("submit on terminal err = %v, want ErrAttemptTerminal", err)
	}
}

func TestAttemptAccessIsOwnerOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, nil)

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := e.attempts.Get(ctx, learnerID+1, attempt.ID); err != model.ErrNotOwner {
		t.Fatalf("get err = %v, want ErrNotOwner", err)
	}
	if _, err := e.attempts.SubmitAnswer(ctx, learnerID+1, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: q.ID,
		Answer:     []string{"Paris"},
	}); err != model.ErrNotOwner {
		t.Fatalf("submit err = %v, want ErrNotOwner", err)
	}
	if _, err := e.attempts.Transition(ctx, learnerID+1, attempt.ID, model.AttemptStatusCompleted); err != model.ErrNotOwner {
		t.Fatalf("transition err = %v, want ErrNotOwner", err)
	}
}

func TestExpiredAttemptRejectsAnswersAndGetsSwept(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, func(req *model.UpdateQuizRequest) {
		req.TimeLimitMinutes = intp(30)
	})

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	overdue := *attempt
	past := time.Now().Add(-time.Minute)
	overdue.ExpiresAt = &past
	e.store.setAttempt(overdue)

	if _, err := e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: q.ID,
		Answer:     []string{"Paris"},
	}); err != model.ErrAttemptExpired {
		t.Fatalf("submit err = %v, want ErrAttemptExpired", err)
	}

	swept, err := e.attempts.AbandonExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(swept) != 1 || swept[0].ID != attempt.ID {
		t.Fatalf("swept = %v", swept)
	}
	if swept[0].Status != model.AttemptStatusAbandoned {
		t.Fatalf("swept status = %s", swept[0].Status)
	}

	kinds := e.events.kinds()
	if len(kinds) == 0 || kinds[len(kinds)-1] != ws.EventAttemptAbandoned {
		t.Fatalf("events = %v, want trailing attempt_abandoned", kinds)
	}
}

func TestAttemptLifecyclePublishesEvents(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz, q := e.seedPublishedQuiz(t, nil)

	attempt, err := e.attempts.Start(ctx, learnerID, quiz.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.attempts.SubmitAnswer(ctx, learnerID, attempt.ID, &model.SubmitAnswerRequest{
		QuestionID: q.ID,
		Answer:     []string{"Paris"},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := e.attempts.Transition(ctx, learnerID, attempt.ID, model.AttemptStatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	want := []ws.Event{ws.EventAttemptStarted, ws.EventAnswerSubmitted, ws.EventAttemptCompleted}
	got := e.events.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
