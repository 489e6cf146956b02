package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/miniapps-backend/internal/domain"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, caller *domain.User, request *domain.CreateTaskRequest) (*domain.Task, error) {
	args := m.Called(ctx, caller, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, caller *domain.User) ([]*domain.Task, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskService) ViewTask(ctx context.Context, caller *domain.User, taskID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, caller, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) EditTask(ctx context.Context, caller *domain.User, taskID uuid.UUID, patch *domain.UpdateTaskRequest) (*domain.Task, error) {
	args := m.Called(ctx, caller, taskID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) MarkCompleted(ctx context.Context, caller *domain.User, taskID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, caller, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) ListByCategory(ctx context.Context, caller *domain.User, category string) ([]*domain.Task, error) {
	args := m.Called(ctx, caller, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, caller *domain.User, taskID uuid.UUID) error {
	args := m.Called(ctx, caller, taskID)
	return args.Error(0)
}

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, borrower *domain.User, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, borrower, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ApproveLoan(ctx context.Context, caller *domain.User, loanID uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, caller, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ViewLoan(ctx context.Context, caller *domain.User, loanID uuid.UUID) (*domain.LoanWithSchedule, error) {
	args := m.Called(ctx, caller, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanWithSchedule), args.Error(1)
}

func (m *MockLoanService) RecordRepayment(ctx context.Context, caller *domain.User, repaymentID uuid.UUID, request *domain.RecordRepaymentRequest) (*domain.ScheduledRepayment, error) {
	args := m.Called(ctx, caller, repaymentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledRepayment), args.Error(1)
}

func (m *MockLoanService) ViewRepayment(ctx context.Context, caller *domain.User, repaymentID uuid.UUID) (*domain.ScheduledRepayment, error) {
	args := m.Called(ctx, caller, repaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledRepayment), args.Error(1)
}

func (m *MockLoanService) ListLoansForCaller(ctx context.Context, caller *domain.User) ([]*domain.Loan, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ListUnapprovedLoans(ctx context.Context, caller *domain.User) ([]*domain.Loan, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ListLoansForUser(ctx context.Context, caller *domain.User, targetUserID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, caller, targetUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}
