package loan

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-hrms/internal/approval"
	"go-hrms/internal/employee"
	loanerrors "go-hrms/internal/loan/errors"
	"go-hrms/internal/shared/txmanager"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=loan_service.go -destination=mock/loan_service_mock.go -package=mock
type Service interface {
	RequestLoan(ctx context.Context, employeeNo int64, req CreateLoanRequest) (LoanResponse, error)
	RequestPostponement(ctx context.Context, employeeNo int64, req CreatePostponementRequest) (PostponementResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (LoanResponse, error)
	DeductPayment(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) (LoanResponse, error)
	MarkInstallmentPaid(ctx context.Context, installmentID uuid.UUID, salaryMonth time.Time, amount decimal.Decimal, paidDate time.Time) error
	DueInstallments(ctx context.Context, employeeNo int64, from, to time.Time) ([]Installment, error)
	ApplyApprovedLoan(ctx context.Context, l *Loan) error
	ApplyApprovedPostponement(ctx context.Context, p *PostponementRequest) error
}

type service struct {
	tx        txmanager.Manager
	repo      Repository
	directory employee.Directory
	approvals approval.Submitter
	logger    *zap.Logger
}

func NewService(tx txmanager.Manager, repo Repository, directory employee.Directory, approvals approval.Submitter, logger ...*zap.Logger) Service {
	l := zap.L().Named("loan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.service")
	}
	return &service{tx: tx, repo: repo, directory: directory, approvals: approvals, logger: l}
}

func (s *service) RequestLoan(ctx context.Context, employeeNo int64, req CreateLoanRequest) (LoanResponse, error) {
	s.logger.Debug("request loan",
		zap.Int64("employee_no", employeeNo),
		zap.String("amount", req.Amount),
		zap.Int("installments", req.NoOfInstallments),
	)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return LoanResponse{}, loanerrors.ErrInvalidLoanAmount
	}
	if req.NoOfInstallments <= 0 {
		return LoanResponse{}, loanerrors.ErrInvalidInstallmentCount
	}
	first, err := parseDate(req.FirstInstallmentDate)
	if err != nil {
		return LoanResponse{}, err
	}

	emp, err := s.directory.FindByNo(ctx, employeeNo)
	if err != nil {
		return LoanResponse{}, err
	}
	scope := approval.EmployeeScope(emp)

	l := &Loan{
		ID:                   uuid.New(),
		EmployeeNo:           employeeNo,
		DepartmentCode:       scope.DepartmentCode,
		ProjectCode:          scope.ProjectCode,
		LoanAmount:           amount.Round(moneyPlaces),
		NoOfInstallments:     req.NoOfInstallments,
		FirstInstallmentDate: first,
		RemainingBalance:     decimal.Zero,
	}
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		l.Reason = &reason
	}

	if err := s.approvals.Submit(ctx, approval.TypeLoan, l); err != nil {
		s.logger.Warn("submit loan failed", zap.Int64("employee_no", employeeNo), zap.Error(err))
		return LoanResponse{}, err
	}

	s.logger.Info("loan submitted",
		zap.String("loan_id", l.ID.String()),
		zap.Int64("employee_no", employeeNo),
	)
	return mapLoan(*l), nil
}

func (s *service) RequestPostponement(ctx context.Context, employeeNo int64, req CreatePostponementRequest) (PostponementResponse, error) {
	installmentID, err := uuid.Parse(req.InstallmentID)
	if err != nil {
		return PostponementResponse{}, loanerrors.ErrInstallmentNotFound
	}
	newDue, err := parseDate(req.NewDueDate)
	if err != nil {
		return PostponementResponse{}, err
	}

	var p *PostponementRequest
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		it, err := s.repo.LockInstallment(txCtx, installmentID)
		if err != nil {
			return err
		}
		if it.EmployeeNo != employeeNo {
			return loanerrors.ErrNotLoanOwner
		}
		if it.Status == InstallmentPaid {
			return loanerrors.ErrInstallmentAlreadyPaid
		}
		if !newDue.After(it.DueDate) {
			return loanerrors.ErrInvalidPostponeDate
		}
		pending, err := s.repo.HasPendingPostponement(txCtx, installmentID)
		if err != nil {
			return err
		}
		if pending {
			return loanerrors.ErrPostponementPending
		}

		emp, err := s.directory.FindByNo(txCtx, employeeNo)
		if err != nil {
			return err
		}
		scope := approval.EmployeeScope(emp)

		p = &PostponementRequest{
			ID:             uuid.New(),
			LoanID:         it.LoanID,
			InstallmentID:  it.ID,
			EmployeeNo:     employeeNo,
			DepartmentCode: scope.DepartmentCode,
			ProjectCode:    scope.ProjectCode,
			NewDueDate:     newDue,
			Reason:         strings.TrimSpace(req.Reason),
		}
		return s.approvals.Submit(txCtx, approval.TypeLoanPostponement, p)
	})
	if err != nil {
		s.logger.Warn("request postponement failed",
			zap.String("installment_id", req.InstallmentID),
			zap.Error(err),
		)
		return PostponementResponse{}, err
	}

	return mapPostponement(*p), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (LoanResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LoanResponse{}, err
	}
	return mapLoan(*l), nil
}

// DeductPayment lowers the balance of an active loan. The loan row stays
// locked until the surrounding transaction ends.
func (s *service) DeductPayment(ctx context.Context, loanID uuid.UUID, amount decimal.Decimal) (LoanResponse, error) {
	if !amount.IsPositive() {
		return LoanResponse{}, loanerrors.ErrInvalidPaymentAmount
	}

	var out Loan
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.repo.LockByID(txCtx, loanID)
		if err != nil {
			return err
		}
		if !l.IsActive {
			return loanerrors.ErrLoanInactive
		}
		if amount.GreaterThan(l.RemainingBalance) {
			return loanerrors.ErrPaymentExceedsBalance
		}

		l.RemainingBalance = l.RemainingBalance.Sub(amount)
		l.IsActive = !l.RemainingBalance.IsZero()
		if err := s.repo.UpdateBalance(txCtx, l); err != nil {
			return err
		}
		out = *l
		return nil
	})
	if err != nil {
		return LoanResponse{}, err
	}

	s.logger.Info("loan payment deducted",
		zap.String("loan_id", loanID.String()),
		zap.String("amount", amount.String()),
		zap.String("remaining_balance", out.RemainingBalance.String()),
	)
	return mapLoan(out), nil
}

// MarkInstallmentPaid settles one installment and deducts it from its loan in
// the same transaction. The installment must still fall due in salaryMonth;
// one postponed after the payroll was calculated is refused so the stale
// version cannot settle it.
func (s *service) MarkInstallmentPaid(ctx context.Context, installmentID uuid.UUID, salaryMonth time.Time, amount decimal.Decimal, paidDate time.Time) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		it, err := s.repo.LockInstallment(txCtx, installmentID)
		if err != nil {
			return err
		}
		if it.Status == InstallmentPaid {
			return loanerrors.ErrInstallmentAlreadyPaid
		}
		from := time.Date(salaryMonth.Year(), salaryMonth.Month(), 1, 0, 0, 0, 0, salaryMonth.Location())
		if it.DueDate.Before(from) || !it.DueDate.Before(from.AddDate(0, 1, 0)) {
			return loanerrors.ErrInstallmentNotDue
		}

		it.Status = InstallmentPaid
		it.PaidDate = &paidDate
		it.PaidAmount = decimal.NewNullDecimal(amount)
		it.SalaryMonth = &salaryMonth
		if err := s.repo.UpdateInstallment(txCtx, it); err != nil {
			return err
		}

		_, err = s.DeductPayment(txCtx, it.LoanID, amount)
		return err
	})
}

func (s *service) DueInstallments(ctx context.Context, employeeNo int64, from, to time.Time) ([]Installment, error) {
	return s.repo.DueInstallments(ctx, employeeNo, from, to)
}

// ApplyApprovedLoan runs inside the final approval transaction.
func (s *service) ApplyApprovedLoan(ctx context.Context, l *Loan) error {
	items, err := BuildSchedule(l.LoanAmount, l.NoOfInstallments, l.FirstInstallmentDate)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].LoanID = l.ID
		items[i].EmployeeNo = l.EmployeeNo
	}
	if err := s.repo.CreateInstallments(ctx, items); err != nil {
		return err
	}

	l.Installments = items
	l.RemainingBalance = l.LoanAmount
	l.IsActive = true
	if err := s.repo.UpdateBalance(ctx, l); err != nil {
		return err
	}

	s.logger.Info("loan schedule generated",
		zap.String("loan_id", l.ID.String()),
		zap.Int("installments", len(items)),
	)
	return nil
}

// ApplyApprovedPostponement moves the installment; the rest of the schedule
// is left as it is.
func (s *service) ApplyApprovedPostponement(ctx context.Context, p *PostponementRequest) error {
	it, err := s.repo.LockInstallment(ctx, p.InstallmentID)
	if err != nil {
		return err
	}
	if it.Status == InstallmentPaid {
		return loanerrors.ErrInstallmentAlreadyPaid
	}

	it.DueDate = p.NewDueDate
	it.Status = InstallmentPostponed
	return s.repo.UpdateInstallment(ctx, it)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, loanerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapLoan(l Loan) LoanResponse {
	resp := LoanResponse{
		ID:                   l.ID.String(),
		EmployeeNo:           l.EmployeeNo,
		Amount:               l.LoanAmount.StringFixed(moneyPlaces),
		NoOfInstallments:     l.NoOfInstallments,
		FirstInstallmentDate: l.FirstInstallmentDate.Format(dateLayout),
		RemainingBalance:     l.RemainingBalance.StringFixed(moneyPlaces),
		IsActive:             l.IsActive,
		Status:               string(l.Status),
		NextApproval:         l.NextApproval,
		NextAppLevel:         l.NextAppLevel,
	}
	for _, it := range l.Installments {
		ir := InstallmentResponse{
			ID:      it.ID.String(),
			SeqNo:   it.SeqNo,
			DueDate: it.DueDate.Format(dateLayout),
			Amount:  it.Amount.StringFixed(moneyPlaces),
			Status:  string(it.Status),
		}
		if it.PaidDate != nil {
			v := it.PaidDate.Format(dateLayout)
			ir.PaidDate = &v
		}
		if it.PaidAmount.Valid {
			v := it.PaidAmount.Decimal.StringFixed(moneyPlaces)
			ir.PaidAmount = &v
		}
		if it.SalaryMonth != nil {
			v := it.SalaryMonth.Format("2006-01")
			ir.SalaryMonth = &v
		}
		resp.Installments = append(resp.Installments, ir)
	}
	return resp
}

func mapPostponement(p PostponementRequest) PostponementResponse {
	return PostponementResponse{
		ID:            p.ID.String(),
		LoanID:        p.LoanID.String(),
		InstallmentID: p.InstallmentID.String(),
		NewDueDate:    p.NewDueDate.Format(dateLayout),
		Status:        string(p.Status),
		NextApproval:  p.NextApproval,
	}
}
