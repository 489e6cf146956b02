package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/miniapps-backend/internal/domain"
)

// UserRepository defines read access to users. Users are owned by the
// authentication subsystem and are never written here.
type UserRepository interface {
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by a user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByUserAndCategory retrieves a user's tasks in one category
	ListByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) ([]*domain.Task, error)

	// Update persists the mutable task fields
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task
	Delete(ctx context.Context, id uuid.UUID) error
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// CreateWithSchedule creates a loan and its full repayment schedule in a
	// single transaction, so origination cannot leave orphaned installments.
	CreateWithSchedule(ctx context.Context, loan *domain.Loan, schedule []*domain.ScheduledRepayment) error

	// GetByID retrieves a loan by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// UpdateStatus updates a loan's status
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// ListByUser retrieves all loans for a borrower
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)

	// ListByStatus retrieves all loans in a given status
	ListByStatus(ctx context.Context, status string) ([]*domain.Loan, error)
}

// RepaymentRepository defines the interface for installment data operations
type RepaymentRepository interface {
	// GetByID retrieves a scheduled repayment by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledRepayment, error)

	// ListByLoanID retrieves a loan's schedule in chronological order
	ListByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduledRepayment, error)

	// MarkPaid sets an installment to PAID with the given repayment date
	MarkPaid(ctx context.Context, id uuid.UUID, repaymentDate time.Time) error

	// CountPendingByLoanID counts a loan's installments still PENDING
	CountPendingByLoanID(ctx context.Context, loanID uuid.UUID) (int, error)

	// ListOverdue retrieves pending installments past due as of a date
	ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.ScheduledRepayment, error)

	// ListDueBetween retrieves pending installments due inside a window
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduledRepayment, error)
}
