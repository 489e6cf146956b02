package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/miniapps-backend/internal/domain"
	apperrors "github.com/segyhp/miniapps-backend/pkg/errors"
	"github.com/segyhp/miniapps-backend/tests/mocks"
)

func TestLoanHandler_CreateLoan(t *testing.T) {
	caller := testCaller()

	t.Run("origination returns 201", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("CreateLoan", mock.Anything, caller, mock.MatchedBy(func(request *domain.CreateLoanRequest) bool {
			return request.Amount.Equal(decimal.NewFromInt(100)) && request.Term == 4
		})).Return(&domain.Loan{
			ID: uuid.New(), UserID: caller.ID, Status: domain.LoanStatusPending,
		}, nil)

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans", map[string]interface{}{
			"amount": 100,
			"term":   4,
		})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).CreateLoan(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
		assert.Equal(t, "Loan successfully created", envelope.Message)
	})

	t.Run("non-positive amount fails request validation", func(t *testing.T) {
		service := &mocks.MockLoanService{}

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans", map[string]interface{}{
			"amount": -10,
			"term":   4,
		})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).CreateLoan(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		service.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing term fails request validation", func(t *testing.T) {
		service := &mocks.MockLoanService{}

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans", map[string]interface{}{
			"amount": 100,
		})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).CreateLoan(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		service.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoanHandler_ApproveLoan(t *testing.T) {
	caller := testCaller()
	loanID := uuid.New()

	t.Run("forbidden surfaces as 403", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("ApproveLoan", mock.Anything, caller, loanID).
			Return(nil, apperrors.NewForbidden("only admins can approve loans"))

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans/approve/"+loanID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"loanId": loanID.String()})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).ApproveLoan(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, "only admins can approve loans", envelope.Message)
	})

	t.Run("second approval surfaces as 409", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("ApproveLoan", mock.Anything, caller, loanID).
			Return(nil, apperrors.NewConflict("loan is already approved"))

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans/approve/"+loanID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"loanId": loanID.String()})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).ApproveLoan(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestLoanHandler_ViewLoan(t *testing.T) {
	caller := testCaller()
	loanID := uuid.New()

	service := &mocks.MockLoanService{}
	service.On("ViewLoan", mock.Anything, caller, loanID).Return(&domain.LoanWithSchedule{
		Loan: &domain.Loan{ID: loanID, UserID: caller.ID, Status: domain.LoanStatusApproved},
		Repayments: []*domain.ScheduledRepayment{
			{ID: uuid.New(), LoanID: loanID, WeekNumber: 1},
		},
	}, nil)

	request := newAuthedRequest(t, caller, http.MethodGet, "/loans/view/"+loanID.String(), nil)
	request = mux.SetURLVars(request, map[string]string{"loanId": loanID.String()})
	recorder := httptest.NewRecorder()
	NewLoanHandler(service).ViewLoan(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Loan successfully fetched", envelope.Message)
}

func TestLoanHandler_RecordRepayment(t *testing.T) {
	caller := testCaller()
	repaymentID := uuid.New()

	t.Run("empty body means paid now", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("RecordRepayment", mock.Anything, caller, repaymentID,
			mock.MatchedBy(func(request *domain.RecordRepaymentRequest) bool {
				return request.RepaymentDate == nil
			}),
		).Return(&domain.ScheduledRepayment{
			ID: repaymentID, Status: domain.RepaymentStatusPaid,
		}, nil)

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans/repayment/"+repaymentID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"repaymentId": repaymentID.String()})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).RecordRepayment(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		service.AssertExpectations(t)
	})

	t.Run("explicit repayment date is passed through", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("RecordRepayment", mock.Anything, caller, repaymentID,
			mock.MatchedBy(func(request *domain.RecordRepaymentRequest) bool {
				return request.RepaymentDate != nil
			}),
		).Return(&domain.ScheduledRepayment{
			ID: repaymentID, Status: domain.RepaymentStatusPaid,
		}, nil)

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans/repayment/"+repaymentID.String(), map[string]string{
			"repaymentDate": "2024-06-01T12:00:00Z",
		})
		request = mux.SetURLVars(request, map[string]string{"repaymentId": repaymentID.String()})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).RecordRepayment(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		service.AssertExpectations(t)
	})

	t.Run("repayment on unapproved loan surfaces as 409", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("RecordRepayment", mock.Anything, caller, repaymentID, mock.Anything).
			Return(nil, apperrors.NewConflict("loan is not approved to make any repayments"))

		request := newAuthedRequest(t, caller, http.MethodPost, "/loans/repayment/"+repaymentID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"repaymentId": repaymentID.String()})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).RecordRepayment(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestLoanHandler_ListUnapprovedLoans(t *testing.T) {
	caller := testCaller()

	service := &mocks.MockLoanService{}
	service.On("ListUnapprovedLoans", mock.Anything, caller).
		Return(nil, apperrors.NewForbidden("only admins can list unapproved loans"))

	request := newAuthedRequest(t, caller, http.MethodGet, "/loans/viewUnapprovedLoans", nil)
	recorder := httptest.NewRecorder()
	NewLoanHandler(service).ListUnapprovedLoans(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestLoanHandler_ListLoansOfUser(t *testing.T) {
	caller := testCaller()
	targetID := uuid.New()

	t.Run("absent target surfaces as 404", func(t *testing.T) {
		service := &mocks.MockLoanService{}
		service.On("ListLoansForUser", mock.Anything, caller, targetID).
			Return(nil, apperrors.NewNotFound("user not found", apperrors.ErrUserNotFound))

		request := newAuthedRequest(t, caller, http.MethodGet, "/loans/viewloansOfAUser/"+targetID.String(), nil)
		request = mux.SetURLVars(request, map[string]string{"userId": targetID.String()})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).ListLoansOfUser(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("non-uuid target is a 400", func(t *testing.T) {
		service := &mocks.MockLoanService{}

		request := newAuthedRequest(t, caller, http.MethodGet, "/loans/viewloansOfAUser/42", nil)
		request = mux.SetURLVars(request, map[string]string{"userId": "42"})
		recorder := httptest.NewRecorder()
		NewLoanHandler(service).ListLoansOfUser(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		service.AssertNotCalled(t, "ListLoansForUser", mock.Anything, mock.Anything, mock.Anything)
	})
}
