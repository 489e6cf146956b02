package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusPending  = "PENDING"
	LoanStatusApproved = "APPROVED"
	LoanStatusPaid     = "PAID"
)

// Loan represents an installment loan owned by a single borrower.
// Lifecycle: created PENDING, approved once by an admin, and closed to PAID
// when the final installment is recorded.
type Loan struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Term      int             `json:"term" db:"term"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Term   int             `json:"term" validate:"required,gt=0"`
}

// LoanWithSchedule is the read-side join of a loan and its full repayment
// schedule, in chronological order.
type LoanWithSchedule struct {
	Loan       *Loan                 `json:"loan"`
	Repayments []*ScheduledRepayment `json:"repayments"`
}
