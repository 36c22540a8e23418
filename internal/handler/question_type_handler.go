package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/response"
	"github.com/brightclass/brightclass-backend/internal/service"
)

// QuestionTypeHandler exposes the registered question types.
type QuestionTypeHandler struct {
	questionService *service.QuestionService
}

// NewQuestionTypeHandler creates a new QuestionTypeHandler.
func NewQuestionTypeHandler(questionService *service.QuestionService) *QuestionTypeHandler {
	return &QuestionTypeHandler{questionService: questionService}
}

// List godoc
// GET /api/v1/question-types
func (h *QuestionTypeHandler) List(c *gin.Context) {
	types := h.questionService.SupportedTypes()

	metadata := make([]interface{}, 0, len(types))
	for _, t := range types {
		if md := h.questionService.TypeMetadata(model.QuestionType(t)); md != nil {
			metadata = append(metadata, md)
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"types":    types,
		"metadata": metadata,
	})
}

// Get godoc
// GET /api/v1/question-types/:type
func (h *QuestionTypeHandler) Get(c *gin.Context) {
	md := h.questionService.TypeMetadata(model.QuestionType(c.Param("type")))
	if md == nil {
		response.Fail(c, http.StatusNotFound, response.ErrUnsupportedQuestionType)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"metadata": md})
}
