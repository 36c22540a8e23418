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

// CourseHandler handles teacher course management endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Create godoc
// POST /api/v1/teacher/courses
func (h *CourseHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// List godoc
// GET /api/v1/teacher/courses
func (h *CourseHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	courses, err := h.courseService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		failDomain(c, err)
		return
	}
	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// Get godoc
// GET /api/v1/teacher/courses/:course_id
func (h *CourseHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}

	course, err := h.courseService.Get(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}
