package model

import "time"

// Learner represents a student user taking quizzes.
type Learner struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LearnerLoginRequest is the payload for learner authentication.
type LearnerLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LearnerLoginResponse is returned after successful learner login.
type LearnerLoginResponse struct {
	Token   string  `json:"token"`
	Learner Learner `json:"learner"`
}
