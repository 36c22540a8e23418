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

// AttemptHandler handles the learner side: fetching quiz papers, opening
// attempts, answering, and finishing.
type AttemptHandler struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(quizService *service.QuizService, attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{quizService: quizService, attemptService: attemptService}
}

// GetPaper godoc
// GET /api/v1/learner/quizzes/:quiz_id/paper
// Returns the published quiz's questions with answer keys stripped.
func (h *AttemptHandler) GetPaper(c *gin.Context) {
	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	paper, err := h.quizService.GetPaper(c.Request.Context(), quizID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// Start godoc
// POST /api/v1/learner/attempts
func (h *AttemptHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), claims.UserID, req.QuizID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// Get godoc
// GET /api/v1/learner/attempts/:attempt_id
func (h *AttemptHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	attemptID, ok := pathUUID(c, "attempt_id")
	if !ok {
		return
	}

	attempt, err := h.attemptService.Get(c.Request.Context(), claims.UserID, attemptID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// SubmitAnswer godoc
// POST /api/v1/learner/attempts/:attempt_id/answers
// Grades and records one answer; re-answering replaces the earlier row.
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)

	attemptID, ok := pathUUID(c, "attempt_id")
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attemptService.SubmitAnswer(c.Request.Context(), claims.UserID, attemptID, &req)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Transition godoc
// POST /api/v1/learner/attempts/:attempt_id/transition
// Moves the attempt to completed (graded) or abandoned. Terminal
// attempts reject any further transition.
func (h *AttemptHandler) Transition(c *gin.Context) {
	claims := middleware.GetClaims(c)

	attemptID, ok := pathUUID(c, "attempt_id")
	if !ok {
		return
	}

	var req model.TransitionAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.Transition(c.Request.Context(), claims.UserID, attemptID, req.Status)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// ListAnswers godoc
// GET /api/v1/learner/attempts/:attempt_id/answers
func (h *AttemptHandler) ListAnswers(c *gin.Context) {
	claims := middleware.GetClaims(c)

	attemptID, ok := pathUUID(c, "attempt_id")
	if !ok {
		return
	}

	answers, err := h.attemptService.ListAnswers(c.Request.Context(), claims.UserID, attemptID)
	if err != nil {
		failDomain(c, err)
		return
	}
	if answers == nil {
		answers = []model.AttemptAnswer{}
	}

	response.Success(c, http.StatusOK, gin.H{"answers": answers})
}
