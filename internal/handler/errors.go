package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
	"github.com/brightclass/brightclass-backend/internal/response"
	"github.com/brightclass/brightclass-backend/internal/service"
)

// failDomain maps service-layer sentinel errors onto the response
// envelope. Anything unrecognized is a 500.
func failDomain(c *gin.Context, err error) {
	var rejected *service.AnswerRejectedError
	if errors.As(err, &rejected) {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, rejected.Errors)
		return
	}

	switch {
	case errors.Is(err, model.ErrCourseNotFound),
		errors.Is(err, model.ErrQuizNotFound),
		errors.Is(err, model.ErrQuestionNotFound),
		errors.Is(err, model.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, model.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotResourceOwner)
	case errors.Is(err, model.ErrQuizNotPublished):
		response.Fail(c, http.StatusConflict, response.ErrQuizNotPublished)
	case errors.Is(err, model.ErrAttemptTerminal):
		response.Fail(c, http.StatusConflict, response.ErrAttemptTerminal)
	case errors.Is(err, model.ErrAttemptExpired):
		response.Fail(c, http.StatusConflict, response.ErrAttemptExpired)
	case errors.Is(err, model.ErrMaxAttemptsReached):
		response.Fail(c, http.StatusConflict, response.ErrMaxAttemptsReached)
	case errors.Is(err, model.ErrUnsupportedQuestionType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedQuestionType)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// pathUUID parses a UUID path parameter, failing the request on a bad id.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
