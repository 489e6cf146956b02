package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RepaymentStatusPending = "PENDING"
	RepaymentStatusPaid    = "PAID"
)

// ScheduledRepayment is one installment of a loan. All installments for a
// loan are created together at origination; each transitions PENDING to PAID
// exactly once, and RepaymentDate is set iff the status is PAID.
type ScheduledRepayment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	LoanID        uuid.UUID       `json:"loan_id" db:"loan_id"`
	WeekNumber    int             `json:"week_number" db:"week_number"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	Status        string          `json:"status" db:"status"`
	RepaymentDate *time.Time      `json:"repayment_date,omitempty" db:"repayment_date"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type RecordRepaymentRequest struct {
	RepaymentDate *time.Time `json:"repaymentDate"`
}
