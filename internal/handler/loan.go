package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/miniapps-backend/internal/auth"
	"github.com/segyhp/miniapps-backend/internal/domain"
	apperrors "github.com/segyhp/miniapps-backend/pkg/errors"
	"github.com/segyhp/miniapps-backend/pkg/response"
)

type LoanHandler struct {
	service   LoanService
	validator *validator.Validate
}

func NewLoanHandler(service LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: newValidator(),
	}
}

// CreateLoan handles POST /loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	var request domain.CreateLoanRequest
	if err := decodeBody(r, &request); err != nil {
		response.Error(w, apperrors.NewValidation("invalid request body"))
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.Error(w, apperrors.NewValidation(err.Error()))
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), caller, &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, loan, "Loan successfully created")
}

// ApproveLoan handles POST /loans/approve/{loanId}
func (h *LoanHandler) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	loanID, err := pathUUID(r, "loanId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid loan id"))
		return
	}

	loan, err := h.service.ApproveLoan(r.Context(), caller, loanID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, loan, "Loan status approved")
}

// ViewLoan handles GET /loans/view/{loanId}
func (h *LoanHandler) ViewLoan(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	loanID, err := pathUUID(r, "loanId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid loan id"))
		return
	}

	view, err := h.service.ViewLoan(r.Context(), caller, loanID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, view, "Loan successfully fetched")
}

// RecordRepayment handles POST /loans/repayment/{repaymentId}
func (h *LoanHandler) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	repaymentID, err := pathUUID(r, "repaymentId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid repayment id"))
		return
	}

	// Body is optional; an empty body means "paid now".
	var request domain.RecordRepaymentRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeBody(r, &request); err != nil {
			response.Error(w, apperrors.NewValidation("invalid request body"))
			return
		}
	}

	repayment, err := h.service.RecordRepayment(r.Context(), caller, repaymentID, &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, repayment, "Repayment status updated")
}

// ViewRepayment handles GET /loans/repayment/{repaymentId}
func (h *LoanHandler) ViewRepayment(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	repaymentID, err := pathUUID(r, "repaymentId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid repayment id"))
		return
	}

	repayment, err := h.service.ViewRepayment(r.Context(), caller, repaymentID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, repayment, "Repayment details fetched successfully")
}

// ListLoans handles GET /loans/viewLoans
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	loans, err := h.service.ListLoansForCaller(r.Context(), caller)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, loans, "Loans successfully fetched")
}

// ListUnapprovedLoans handles GET /loans/viewUnapprovedLoans
func (h *LoanHandler) ListUnapprovedLoans(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	loans, err := h.service.ListUnapprovedLoans(r.Context(), caller)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, loans, "Unapproved loans fetched")
}

// ListLoansOfUser handles GET /loans/viewloansOfAUser/{userId}
func (h *LoanHandler) ListLoansOfUser(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid user id"))
		return
	}

	loans, err := h.service.ListLoansForUser(r.Context(), caller, userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, loans, "Loans successfully fetched")
}
