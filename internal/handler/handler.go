package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/segyhp/miniapps-backend/internal/domain"
)

// TaskService is the task workflow consumed by TaskHandler.
type TaskService interface {
	CreateTask(ctx context.Context, caller *domain.User, request *domain.CreateTaskRequest) (*domain.Task, error)
	ListTasks(ctx context.Context, caller *domain.User) ([]*domain.Task, error)
	ViewTask(ctx context.Context, caller *domain.User, taskID uuid.UUID) (*domain.Task, error)
	EditTask(ctx context.Context, caller *domain.User, taskID uuid.UUID, patch *domain.UpdateTaskRequest) (*domain.Task, error)
	MarkCompleted(ctx context.Context, caller *domain.User, taskID uuid.UUID) (*domain.Task, error)
	ListByCategory(ctx context.Context, caller *domain.User, category string) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, caller *domain.User, taskID uuid.UUID) error
}

// LoanService is the loan workflow consumed by LoanHandler.
type LoanService interface {
	CreateLoan(ctx context.Context, borrower *domain.User, request *domain.CreateLoanRequest) (*domain.Loan, error)
	ApproveLoan(ctx context.Context, caller *domain.User, loanID uuid.UUID) (*domain.Loan, error)
	ViewLoan(ctx context.Context, caller *domain.User, loanID uuid.UUID) (*domain.LoanWithSchedule, error)
	RecordRepayment(ctx context.Context, caller *domain.User, repaymentID uuid.UUID, request *domain.RecordRepaymentRequest) (*domain.ScheduledRepayment, error)
	ViewRepayment(ctx context.Context, caller *domain.User, repaymentID uuid.UUID) (*domain.ScheduledRepayment, error)
	ListLoansForCaller(ctx context.Context, caller *domain.User) ([]*domain.Loan, error)
	ListUnapprovedLoans(ctx context.Context, caller *domain.User) ([]*domain.Loan, error)
	ListLoansForUser(ctx context.Context, caller *domain.User, targetUserID uuid.UUID) ([]*domain.Loan, error)
}

// newValidator builds the request validator. Decimal fields validate through
// their float value so numeric tags like gt=0 apply.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}
