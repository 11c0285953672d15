package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-hrms/internal/adjustment"
	"go-hrms/internal/approval"
	"go-hrms/internal/attendance"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeesalary"
	"go-hrms/internal/loan"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/dberr"
	"go-hrms/internal/shared/txmanager"
)

// Unique indexes a racing calculation can trip. Versions come from the
// counter, so in practice the loser hits the latest index.
const (
	versionIndex = "uq_salary_header_version"
	latestIndex  = "uq_salary_header_latest"
)

// AdjustmentSource is the part of the adjustment service payroll reads from
// and settles.
type AdjustmentSource interface {
	Active(ctx context.Context, employeeNo int64, kind adjustment.Kind, from, to time.Time) ([]adjustment.MonthlyAdjustment, error)
	MarkApplied(ctx context.Context, id uuid.UUID) error
}

type AttendanceSource interface {
	Summary(ctx context.Context, employeeNo int64, from, to time.Time) (attendance.Summary, error)
}

type LoanLedger interface {
	DueInstallments(ctx context.Context, employeeNo int64, from, to time.Time) ([]loan.Installment, error)
	MarkInstallmentPaid(ctx context.Context, installmentID uuid.UUID, salaryMonth time.Time, amount decimal.Decimal, paidDate time.Time) error
}

// Sources groups the collaborators a calculation reads.
type Sources struct {
	Directory   employee.Directory
	Breakdown   employeesalary.BreakdownTable
	Adjustments AdjustmentSource
	Attendance  AttendanceSource
	Loans       LoanLedger
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, actorNo int64, req CalculatePayrollRequest) (PayrollResponse, error)
	Recalculate(ctx context.Context, actorNo int64, req RecalculatePayrollRequest) (PayrollResponse, error)
	Latest(ctx context.Context, employeeNo int64, month string) (PayrollResponse, error)
	History(ctx context.Context, employeeNo int64, month string) ([]PayrollResponse, error)
	ApplyApprovedPayroll(ctx context.Context, h *SalaryHeader) error
}

type service struct {
	tx        txmanager.Manager
	repo      Repository
	src       Sources
	counters  counter.Repository
	locker    Locker
	approvals approval.Submitter
	policy    config.PayrollPolicy
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	tx txmanager.Manager,
	repo Repository,
	src Sources,
	counters counter.Repository,
	locker Locker,
	approvals approval.Submitter,
	policy config.PayrollPolicy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		src:       src,
		counters:  counters,
		locker:    locker,
		approvals: approvals,
		policy:    policy,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Calculate(ctx context.Context, actorNo int64, req CalculatePayrollRequest) (PayrollResponse, error) {
	month, err := parseMonth(req.SalaryMonth)
	if err != nil {
		return PayrollResponse{}, err
	}
	h, err := s.produce(ctx, actorNo, req.EmployeeNo, month, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapHeader(*h), nil
}

// Recalculate produces the next version of a month that is not approved
// yet. Approval starts again at level 1.
func (s *service) Recalculate(ctx context.Context, actorNo int64, req RecalculatePayrollRequest) (PayrollResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return PayrollResponse{}, payrollerrors.ErrRecalculationReasonRequired
	}
	month, err := parseMonth(req.SalaryMonth)
	if err != nil {
		return PayrollResponse{}, err
	}
	h, err := s.produce(ctx, actorNo, req.EmployeeNo, month, &reason)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapHeader(*h), nil
}

// produce runs one calculation under the (employee, month) lock. A non-nil
// reason marks a recalculation, which needs an existing version.
func (s *service) produce(ctx context.Context, actorNo, employeeNo int64, month time.Time, reason *string) (*SalaryHeader, error) {
	s.logger.Debug("calculate payroll",
		zap.Int64("employee_no", employeeNo),
		zap.String("month", month.Format(monthLayout)),
		zap.Bool("recalculation", reason != nil),
	)

	release, err := s.locker.Acquire(ctx, employeeNo, month)
	if err != nil {
		return nil, err
	}
	defer release()

	var out *SalaryHeader
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		prior, err := s.repo.EarliestUnapprovedBefore(txCtx, employeeNo, month)
		if err != nil {
			return err
		}
		if prior != nil {
			return &PriorPayrollUnapprovedError{EmployeeNo: employeeNo, Month: prior.SalaryMonth, Status: prior.Status}
		}

		latest, err := s.repo.LockLatest(txCtx, employeeNo, month)
		if err != nil {
			return err
		}
		if latest == nil && reason != nil {
			return payrollerrors.ErrPayrollNotFound
		}
		if latest != nil && latest.Status == approval.StatusApproved {
			return payrollerrors.ErrPayrollAlreadyApproved
		}

		in, err := s.gather(txCtx, employeeNo, month)
		if err != nil {
			return err
		}
		h, err := Build(in, s.policy)
		if err != nil {
			return err
		}

		version, err := s.nextVersion(txCtx, employeeNo, month)
		if err != nil {
			return err
		}
		if latest != nil {
			if err := s.repo.Supersede(txCtx, latest); err != nil {
				return err
			}
		}

		h.ID = uuid.New()
		h.SalaryVersion = version
		h.IsLatest = true
		h.CalculatedBy = actorNo
		h.RecalculationReason = reason
		for i := range h.Details {
			h.Details[i].ID = uuid.New()
			h.Details[i].HeaderID = h.ID
		}

		if err := s.approvals.Submit(txCtx, approval.TypePayroll, h); err != nil {
			return err
		}
		out = h
		return nil
	})
	if dberr.IsUniqueViolation(err, versionIndex) || dberr.IsUniqueViolation(err, latestIndex) {
		err = &approval.ConcurrentModificationError{
			Entity: "SalaryHeader",
			ID:     fmt.Sprintf("%d/%s", employeeNo, month.Format(monthLayout)),
		}
	}
	if err != nil {
		s.logger.Warn("payroll calculation failed",
			zap.Int64("employee_no", employeeNo),
			zap.String("month", month.Format(monthLayout)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("payroll calculated",
		zap.String("header_id", out.ID.String()),
		zap.Int64("employee_no", employeeNo),
		zap.String("month", month.Format(monthLayout)),
		zap.Int("version", out.SalaryVersion),
		zap.String("net_salary", out.NetSalary.String()),
	)
	return out, nil
}

func (s *service) gather(ctx context.Context, employeeNo int64, month time.Time) (Inputs, error) {
	from, to := monthBounds(month)

	emp, err := s.src.Directory.FindByNo(ctx, employeeNo)
	if err != nil {
		return Inputs{}, err
	}
	defaults, err := s.src.Breakdown.CategoryComponents(ctx, emp.Category)
	if err != nil {
		return Inputs{}, err
	}
	overrides, err := s.src.Breakdown.ContractOverrides(ctx, employeeNo)
	if err != nil {
		return Inputs{}, err
	}
	breakdown, err := employeesalary.Merge(defaults, overrides)
	if err != nil {
		return Inputs{}, err
	}

	allowances, err := s.src.Adjustments.Active(ctx, employeeNo, adjustment.KindAllowance, from, to)
	if err != nil {
		return Inputs{}, err
	}
	deductions, err := s.src.Adjustments.Active(ctx, employeeNo, adjustment.KindDeduction, from, to)
	if err != nil {
		return Inputs{}, err
	}
	summary, err := s.src.Attendance.Summary(ctx, employeeNo, from, to)
	if err != nil {
		return Inputs{}, err
	}
	installments, err := s.src.Loans.DueInstallments(ctx, employeeNo, from, to)
	if err != nil {
		return Inputs{}, err
	}

	return Inputs{
		Employee:     *emp,
		Month:        from,
		Breakdown:    breakdown,
		Allowances:   allowances,
		Deductions:   deductions,
		Attendance:   summary,
		Installments: installments,
	}, nil
}

// nextVersion lifts the counter over versions written before it existed and
// takes the next value.
func (s *service) nextVersion(ctx context.Context, employeeNo int64, month time.Time) (int, error) {
	key := fmt.Sprintf("%d:%s", employeeNo, month.Format(monthLayout))
	current, err := s.repo.MaxVersion(ctx, employeeNo, month)
	if err != nil {
		return 0, err
	}
	if err := s.counters.SetFloor(ctx, salaryVersionCounter, key, int64(current)); err != nil {
		return 0, err
	}
	next, err := s.counters.GetNextValue(ctx, salaryVersionCounter, key)
	if err != nil {
		return 0, err
	}
	return int(next), nil
}

func (s *service) Latest(ctx context.Context, employeeNo int64, month string) (PayrollResponse, error) {
	m, err := parseMonth(month)
	if err != nil {
		return PayrollResponse{}, err
	}
	h, err := s.repo.Latest(ctx, employeeNo, m)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapHeader(*h), nil
}

func (s *service) History(ctx context.Context, employeeNo int64, month string) ([]PayrollResponse, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.History(ctx, employeeNo, m)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	return mapHeaders(rows), nil
}

// ApplyApprovedPayroll settles what the approved version consumed. It runs
// inside the final approval transaction, so a failure keeps the version
// pending.
func (s *service) ApplyApprovedPayroll(ctx context.Context, h *SalaryHeader) error {
	details, err := s.repo.Details(ctx, h.ID)
	if err != nil {
		return err
	}

	paidDate := dayOf(s.now())
	var paid, applied int
	for _, d := range details {
		if d.SourceID == nil {
			continue
		}
		switch {
		case d.Source == SourceLoan:
			if err := s.src.Loans.MarkInstallmentPaid(ctx, *d.SourceID, h.SalaryMonth, d.Amount, paidDate); err != nil {
				return err
			}
			paid++
		case d.Source == SourceAdjustment && d.OneTime:
			if err := s.src.Adjustments.MarkApplied(ctx, *d.SourceID); err != nil {
				return err
			}
			applied++
		}
	}

	s.logger.Info("payroll settled",
		zap.String("header_id", h.ID.String()),
		zap.Int64("employee_no", h.EmployeeNo),
		zap.Int("installments_paid", paid),
		zap.Int("adjustments_applied", applied),
	)
	return nil
}

func parseMonth(v string) (time.Time, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidPeriodFormat
	}
	return t, nil
}
