package service_test

import (
	"context"
	"testing"

	"github.com/brightclass/brightclass-backend/internal/config"
	"github.com/brightclass/brightclass-backend/internal/model"
)

func TestGetPaperStripsAnswerKeys(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz := e.seedQuiz(t)

	if _, _, err := e.questions.CreateForQuiz(ctx, ownerID, quiz.ID, mcDraft("Capital of France?", 5)); err != nil {
		t.Fatalf("seed mc: %v", err)
	}
	if _, _, err := e.questions.CreateForQuiz(ctx, ownerID, quiz.ID, saDraft("Capital of Spain?", 10, "Madrid")); err != nil {
		t.Fatalf("seed sa: %v", err)
	}
	if _, err := e.quizzes.SetPublished(ctx, ownerID, quiz.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}

	paper, err := e.quizzes.GetPaper(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("get paper: %v", err)
	}
	if len(paper.Questions) != 2 {
		t.Fatalf("paper has %d questions, want 2", len(paper.Questions))
	}
	if paper.TotalPoints != 15 {
		t.Fatalf("paper total = %d, want 15", paper.TotalPoints)
	}
	for _, q := range paper.Questions {
		if len(q.CorrectAnswers) != 0 {
			t.Fatalf("answer key leaked for %s: %v", q.Type, q.CorrectAnswers)
		}
		if q.Explanation != "" {
			t.Fatalf("explanation leaked for %s", q.Type)
		}
		for _, opt := range q.Options {
			if opt.IsCorrect {
				t.Fatalf("option flag leaked on %q", opt.Text)
			}
		}
	}
}

func TestGetPaperRequiresPublishedQuiz(t *testing.T) {
	e := newEnv(t)
	quiz := e.seedQuiz(t)

	if _, err := e.quizzes.GetPaper(context.Background(), quiz.ID); err != model.ErrQuizNotPublished {
		t.Fatalf("err = %v, want ErrQuizNotPublished", err)
	}
}

func TestPaperIsCachedAndInvalidatedOnQuestionChange(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz := e.seedQuiz(t)

	q, _, err := e.questions.CreateForQuiz(ctx, ownerID, quiz.ID, saDraft("Capital of Italy?", 5, "Rome"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := e.quizzes.SetPublished(ctx, ownerID, quiz.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if _, err := e.quizzes.GetPaper(ctx, quiz.ID); err != nil {
		t.Fatalf("get paper: %v", err)
	}
	key := config.CacheKey.QuizPaperKey(quiz.ID.String())
	if n, _ := e.rdb.Exists(ctx, key).Result(); n != 1 {
		t.Fatal("paper not cached after render")
	}

	if err := e.questions.DeleteForQuiz(ctx, ownerID, quiz.ID, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := e.rdb.Exists(ctx, key).Result(); n != 0 {
		t.Fatal("paper cache not invalidated by question delete")
	}

	paper, err := e.quizzes.GetPaper(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("rerender: %v", err)
	}
	if len(paper.Questions) != 0 || paper.TotalPoints != 0 {
		t.Fatalf("stale paper served: %d questions, total %d", len(paper.Questions), paper.TotalPoints)
	}
}

func TestUpdateSettingsNeverTouchesBookkeeping(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz := e.seedQuiz(t)

	if _, _, err := e.questions.CreateForQuiz(ctx, ownerID, quiz.ID, saDraft("Capital of Japan?", 10, "Tokyo")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := e.quizzes.Update(ctx, ownerID, quiz.ID, &model.UpdateQuizRequest{
		Title:        "Renamed",
		PassingScore: intp(7),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" || updated.PassingScore != 7 {
		t.Fatalf("settings not applied: %+v", updated)
	}

	state := e.quizState(t, quiz.ID)
	if state.TotalPoints != 10 || len(state.QuestionIDs) != 1 {
		t.Fatalf("bookkeeping changed by settings update: total=%d ids=%v", state.TotalPoints, state.QuestionIDs)
	}
}

func TestQuizAccessIsOwnerOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quiz := e.seedQuiz(t)

	if _, err := e.quizzes.Get(ctx, intruderID, quiz.ID); err != model.ErrNotOwner {
		t.Fatalf("get err = %v, want ErrNotOwner", err)
	}
	if _, err := e.quizzes.SetPublished(ctx, intruderID, quiz.ID, true); err != model.ErrNotOwner {
		t.Fatalf("publish err = %v, want ErrNotOwner", err)
	}
}
