package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/model"
)

// CourseService handles course management for teachers.
type CourseService struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// Create adds a course owned by the teacher.
func (s *CourseService) Create(ctx context.Context, teacherID int, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		TeacherID:   teacherID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Get retrieves a course for its owning teacher.
func (s *CourseService) Get(ctx context.Context, teacherID int, courseID uuid.UUID) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, model.ErrNotOwner
	}
	return course, nil
}

// List retrieves the teacher's courses.
func (s *CourseService) List(ctx context.Context, teacherID int) ([]model.Course, error) {
	return s.courses.ListByTeacher(ctx, teacherID)
}
