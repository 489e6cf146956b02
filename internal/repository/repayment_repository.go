package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/miniapps-backend/internal/domain"
)

type repaymentRepository struct {
	db *sqlx.DB
}

func NewRepaymentRepository(db *sqlx.DB) RepaymentRepository {
	return &repaymentRepository{db: db}
}

func (r *repaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, week_number, amount, due_date, status, repayment_date, created_at
		FROM loan_repayments
		WHERE id = $1
	`

	var repayment domain.ScheduledRepayment
	err := r.db.GetContext(ctx, &repayment, query, id)
	if err != nil {
		return nil, err
	}

	return &repayment, nil
}

func (r *repaymentRepository) ListByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, week_number, amount, due_date, status, repayment_date, created_at
		FROM loan_repayments
		WHERE loan_id = $1
		ORDER BY week_number
	`

	repayments := []*domain.ScheduledRepayment{}
	err := r.db.SelectContext(ctx, &repayments, query, loanID)
	if err != nil {
		return nil, err
	}

	return repayments, nil
}

func (r *repaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, repaymentDate time.Time) error {
	query := `
		UPDATE loan_repayments
		SET status = $2, repayment_date = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, domain.RepaymentStatusPaid, repaymentDate)
	return err
}

func (r *repaymentRepository) CountPendingByLoanID(ctx context.Context, loanID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM loan_repayments
		WHERE loan_id = $1 AND status = $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, loanID, domain.RepaymentStatusPending)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repaymentRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, week_number, amount, due_date, status, repayment_date, created_at
		FROM loan_repayments
		WHERE status = $1 AND due_date < $2
		ORDER BY due_date
	`

	repayments := []*domain.ScheduledRepayment{}
	err := r.db.SelectContext(ctx, &repayments, query, domain.RepaymentStatusPending, asOf)
	if err != nil {
		return nil, err
	}

	return repayments, nil
}

func (r *repaymentRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduledRepayment, error) {
	query := `
		SELECT id, loan_id, week_number, amount, due_date, status, repayment_date, created_at
		FROM loan_repayments
		WHERE status = $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date
	`

	repayments := []*domain.ScheduledRepayment{}
	err := r.db.SelectContext(ctx, &repayments, query, domain.RepaymentStatusPending, from, to)
	if err != nil {
		return nil, err
	}

	return repayments, nil
}
