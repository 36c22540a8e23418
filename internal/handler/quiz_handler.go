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

// QuizHandler handles teacher quiz management endpoints.
type QuizHandler struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, attemptService *service.AttemptService) *QuizHandler {
	return &QuizHandler{quizService: quizService, attemptService: attemptService}
}

// Create godoc
// POST /api/v1/teacher/courses/:course_id/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}

	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), claims.UserID, courseID, &req)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// ListByCourse godoc
// GET /api/v1/teacher/courses/:course_id/quizzes
func (h *QuizHandler) ListByCourse(c *gin.Context) {
	claims := middleware.GetClaims(c)

	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListByCourse(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failDomain(c, err)
		return
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}

	response.Success(c, http.StatusOK, gin.H{"quizzes": quizzes})
}

// Get godoc
// GET /api/v1/teacher/quizzes/:quiz_id
func (h *QuizHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	quiz, err := h.quizService.Get(c.Request.Context(), claims.UserID, quizID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Update godoc
// PATCH /api/v1/teacher/quizzes/:quiz_id
func (h *QuizHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	var req model.UpdateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), claims.UserID, quizID, &req)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Publish godoc
// POST /api/v1/teacher/quizzes/:quiz_id/publish
func (h *QuizHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish godoc
// POST /api/v1/teacher/quizzes/:quiz_id/unpublish
func (h *QuizHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *QuizHandler) setPublished(c *gin.Context, published bool) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	quiz, err := h.quizService.SetPublished(c.Request.Context(), claims.UserID, quizID, published)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// ListAttempts godoc
// GET /api/v1/teacher/quizzes/:quiz_id/attempts
// Returns every learner attempt at the quiz for the owning teacher.
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	attempts, err := h.attemptService.ListByQuiz(c.Request.Context(), claims.UserID, quizID)
	if err != nil {
		failDomain(c, err)
		return
	}
	if attempts == nil {
		attempts = []model.QuizAttempt{}
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}
