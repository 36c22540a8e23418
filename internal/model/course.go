package model

import (
	"time"

	"github.com/google/uuid"
)

// Course groups quizzes and questions under one teacher.
type Course struct {
	ID          uuid.UUID `json:"id"`
	TeacherID   int       `json:"teacher_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a new course.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}
