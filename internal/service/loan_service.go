package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/miniapps-backend/internal/config"
	"github.com/segyhp/miniapps-backend/internal/domain"
	"github.com/segyhp/miniapps-backend/internal/repository"
	apperrors "github.com/segyhp/miniapps-backend/pkg/errors"
	"github.com/segyhp/miniapps-backend/pkg/utils"
)

type LoanService struct {
	loanRepo      repository.LoanRepository
	repaymentRepo repository.RepaymentRepository
	userRepo      repository.UserRepository
	redis         *redis.Client
	config        *config.Config
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	repaymentRepo repository.RepaymentRepository,
	userRepo repository.UserRepository,
	redis *redis.Client,
	config *config.Config,
) *LoanService {
	return &LoanService{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		userRepo:      userRepo,
		redis:         redis,
		config:        config,
	}
}

// CreateLoan originates a loan: it splits the principal into weekly
// installments due every 7 days and persists the loan together with its full
// schedule in a single transaction. The returned loan is re-read after the
// write so the caller sees the persisted row.
func (s *LoanService) CreateLoan(ctx context.Context, borrower *domain.User, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if !request.Amount.IsPositive() {
		return nil, apperrors.NewValidation("amount must be a positive number")
	}
	if request.Term <= 0 {
		return nil, apperrors.NewValidation("term must be a positive number of weeks")
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:        uuid.New(),
		UserID:    borrower.ID,
		Amount:    request.Amount,
		Term:      request.Term,
		Status:    domain.LoanStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	installments := utils.SplitInstallments(request.Amount, request.Term)

	schedule := make([]*domain.ScheduledRepayment, 0, request.Term)
	for week := 1; week <= request.Term; week++ {
		schedule = append(schedule, &domain.ScheduledRepayment{
			ID:         uuid.New(),
			LoanID:     loan.ID,
			WeekNumber: week,
			Amount:     installments[week-1],
			DueDate:    utils.CalculateDueDate(now, week),
			Status:     domain.RepaymentStatusPending,
			CreatedAt:  now,
		})
	}

	if err := s.loanRepo.CreateWithSchedule(ctx, loan, schedule); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	created, err := s.loanRepo.GetByID(ctx, loan.ID)
	if err != nil {
		return nil, apperrors.WrapInternal("loan was not created", err)
	}

	return created, nil
}

// ApproveLoan transitions a loan PENDING -> APPROVED. Admin only, one-way.
func (s *LoanService) ApproveLoan(ctx context.Context, caller *domain.User, loanID uuid.UUID) (*domain.Loan, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbidden("only admins can approve loans")
	}

	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusPending {
		return nil, apperrors.NewConflict("loan is already approved")
	}

	if err := s.loanRepo.UpdateStatus(ctx, loanID, domain.LoanStatusApproved); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	s.invalidateLoanView(ctx, loanID)

	loan.Status = domain.LoanStatusApproved
	return loan, nil
}

// ViewLoan returns a loan joined with its full repayment schedule. Visible
// to the borrower and admins. The aggregate is cached until the loan mutates.
func (s *LoanService) ViewLoan(ctx context.Context, caller *domain.User, loanID uuid.UUID) (*domain.LoanWithSchedule, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(loan.UserID) {
		return nil, apperrors.NewForbidden("you are not authorised to view this loan")
	}

	if view := s.cachedLoanView(ctx, loanID); view != nil {
		return view, nil
	}

	repayments, err := s.repaymentRepo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	view := &domain.LoanWithSchedule{Loan: loan, Repayments: repayments}
	s.storeLoanView(ctx, loanID, view)

	return view, nil
}

// RecordRepayment marks one installment PAID. The parent loan must be
// APPROVED and the installment still PENDING; the repayment date defaults to
// now. Recording the final installment closes the loan to PAID.
func (s *LoanService) RecordRepayment(ctx context.Context, caller *domain.User, repaymentID uuid.UUID, request *domain.RecordRepaymentRequest) (*domain.ScheduledRepayment, error) {
	repayment, err := s.repaymentRepo.GetByID(ctx, repaymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("repayment not found", apperrors.ErrRepaymentNotFound)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	if repayment.Status == domain.RepaymentStatusPaid {
		return nil, apperrors.NewConflict("repayment is already paid")
	}

	loan, err := s.loanRepo.GetByID(ctx, repayment.LoanID)
	if err != nil {
		return nil, apperrors.WrapInternal("repayment has no owning loan", err)
	}

	if loan.Status != domain.LoanStatusApproved {
		return nil, apperrors.NewConflict("loan is not approved to make any repayments")
	}

	if !caller.CanAccess(loan.UserID) {
		return nil, apperrors.NewForbidden("you are not authorised to make this repayment")
	}

	repaymentDate := time.Now()
	if request != nil && request.RepaymentDate != nil {
		repaymentDate = *request.RepaymentDate
	}

	if err := s.repaymentRepo.MarkPaid(ctx, repaymentID, repaymentDate); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	repayment.Status = domain.RepaymentStatusPaid
	repayment.RepaymentDate = &repaymentDate

	// Close the loan once the last installment is settled.
	pending, err := s.repaymentRepo.CountPendingByLoanID(ctx, repayment.LoanID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	if pending == 0 {
		if err := s.loanRepo.UpdateStatus(ctx, repayment.LoanID, domain.LoanStatusPaid); err != nil {
			return nil, apperrors.WrapDatabaseError(err)
		}
	}

	s.invalidateLoanView(ctx, repayment.LoanID)

	return repayment, nil
}

// ViewRepayment returns one installment, visible to the parent loan's
// borrower and admins.
func (s *LoanService) ViewRepayment(ctx context.Context, caller *domain.User, repaymentID uuid.UUID) (*domain.ScheduledRepayment, error) {
	repayment, err := s.repaymentRepo.GetByID(ctx, repaymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("repayment not found", apperrors.ErrRepaymentNotFound)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	loan, err := s.loanRepo.GetByID(ctx, repayment.LoanID)
	if err != nil {
		return nil, apperrors.WrapInternal("repayment has no owning loan", err)
	}

	if !caller.CanAccess(loan.UserID) {
		return nil, apperrors.NewForbidden("you are not authorised to view this repayment")
	}

	return repayment, nil
}

// ListLoansForCaller returns all loans where the caller is the borrower.
func (s *LoanService) ListLoansForCaller(ctx context.Context, caller *domain.User) ([]*domain.Loan, error) {
	loans, err := s.loanRepo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return loans, nil
}

// ListUnapprovedLoans returns all PENDING loans. Admin only.
func (s *LoanService) ListUnapprovedLoans(ctx context.Context, caller *domain.User) ([]*domain.Loan, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbidden("only admins can list unapproved loans")
	}

	loans, err := s.loanRepo.ListByStatus(ctx, domain.LoanStatusPending)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return loans, nil
}

// ListLoansForUser returns all loans of one borrower. Admin only; the target
// user must exist.
func (s *LoanService) ListLoansForUser(ctx context.Context, caller *domain.User, targetUserID uuid.UUID) ([]*domain.Loan, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.NewForbidden("only admins can list another user's loans")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("user not found", apperrors.ErrUserNotFound)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	loans, err := s.loanRepo.ListByUser(ctx, targetUserID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return loans, nil
}

func (s *LoanService) getLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("loan not found", apperrors.ErrLoanNotFound)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	return loan, nil
}

// Cache helpers. The cache is best-effort: a miss or a Redis failure falls
// back to the database.

func loanViewKey(loanID uuid.UUID) string {
	return "loan:view:" + loanID.String()
}

func (s *LoanService) cachedLoanView(ctx context.Context, loanID uuid.UUID) *domain.LoanWithSchedule {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(ctx, loanViewKey(loanID)).Result()
	if err != nil {
		return nil
	}

	var view domain.LoanWithSchedule
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil
	}

	return &view
}

func (s *LoanService) storeLoanView(ctx context.Context, loanID uuid.UUID, view *domain.LoanWithSchedule) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(view)
	if err != nil {
		return
	}

	ttl := 10 * time.Minute
	if s.config != nil && s.config.Redis.CacheTTL > 0 {
		ttl = s.config.Redis.CacheTTL
	}

	if err := s.redis.Set(ctx, loanViewKey(loanID), raw, ttl).Err(); err != nil {
		log.Printf("Failed to cache loan view %s: %v", loanID, err)
	}
}

func (s *LoanService) invalidateLoanView(ctx context.Context, loanID uuid.UUID) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, loanViewKey(loanID)).Err(); err != nil {
		log.Printf("Failed to invalidate loan view %s: %v", loanID, err)
	}
}
