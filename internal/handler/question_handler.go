package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightclass/brightclass-backend/internal/middleware"
	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/response"
	"github.com/brightclass/brightclass-backend/internal/service"
	"github.com/brightclass/brightclass-backend/internal/validator"
)

// QuestionHandler handles question authoring endpoints. Schema failures
// surface as structured validation details rather than opaque errors, so
// authoring UIs can render them inline.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Create godoc
// POST /api/v1/teacher/quizzes/:quiz_id/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	var draft model.QuestionDraft
	if fields := validator.Bind(c, &draft); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, res, err := h.questionService.CreateForQuiz(c.Request.Context(), claims.UserID, quizID, &draft)
	if err != nil {
		failDomain(c, err)
		return
	}
	if !res.IsValid {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, res.Errors)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": q})
}

// List godoc
// GET /api/v1/teacher/quizzes/:quiz_id/questions
// Returns the quiz's questions in quiz order with answer keys intact.
func (h *QuestionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	questions, err := h.questionService.ListForQuiz(c.Request.Context(), claims.UserID, quizID)
	if err != nil {
		failDomain(c, err)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Get godoc
// GET /api/v1/teacher/quizzes/:quiz_id/questions/:question_id
func (h *QuestionHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "question_id")
	if !ok {
		return
	}

	q, err := h.questionService.GetForQuiz(c.Request.Context(), claims.UserID, quizID, questionID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": q})
}

// Update godoc
// PATCH /api/v1/teacher/quizzes/:quiz_id/questions/:question_id
// Patches a question; the merged result is revalidated against its
// type's schema. The question type itself cannot change.
func (h *QuestionHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "question_id")
	if !ok {
		return
	}

	var patch model.QuestionDraft
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, res, err := h.questionService.UpdateForQuiz(c.Request.Context(), claims.UserID, quizID, questionID, &patch)
	if err != nil {
		failDomain(c, err)
		return
	}
	if !res.IsValid {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, res.Errors)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": q})
}

// Delete godoc
// DELETE /api/v1/teacher/quizzes/:quiz_id/questions/:question_id
// Removes the question from the quiz and deletes it; the quiz's total
// points drop by the question's points exactly once.
func (h *QuestionHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "question_id")
	if !ok {
		return
	}

	if err := h.questionService.DeleteForQuiz(c.Request.Context(), claims.UserID, quizID, questionID); err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Validate godoc
// POST /api/v1/teacher/questions/validate
// Dry-runs a draft through its type's schema check without persisting.
func (h *QuestionHandler) Validate(c *gin.Context) {
	var draft model.QuestionDraft
	if fields := validator.Bind(c, &draft); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res := h.questionService.ValidateDraft(&draft)
	response.Success(c, http.StatusOK, gin.H{"validation": res})
}
