package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryWork     = "WORK"
	CategoryPersonal = "PERSONAL"
	CategoryShopping = "SHOPPING"
	CategoryOthers   = "OTHERS"
)

// Task represents a single-owner todo entry
type Task struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	Time        string    `json:"time" db:"due_time"` // FULL_DAY or HH:MM
	Category    string    `json:"category" db:"category"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsValidCategory checks a category against the task category enum.
func IsValidCategory(category string) bool {
	switch category {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryOthers:
		return true
	}
	return false
}

// DTOs for requests and responses

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"dueDate" validate:"required"`
	Category    string `json:"category" validate:"omitempty,oneof=WORK PERSONAL SHOPPING OTHERS"`
	Time        string `json:"time" validate:"omitempty"`
}

// UpdateTaskRequest is a partial patch; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	DueDate     *string `json:"dueDate" validate:"omitempty"`
	Category    *string `json:"category" validate:"omitempty,oneof=WORK PERSONAL SHOPPING OTHERS"`
	Time        *string `json:"time" validate:"omitempty"`
}
