package leave

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrms/internal/approval"
	"go-hrms/internal/employee"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/txmanager"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeNo int64, req CreateLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (LeaveResponse, error)
	ListMine(ctx context.Context, employeeNo int64) ([]LeaveResponse, error)
	Cancel(ctx context.Context, employeeNo int64, id uuid.UUID) error
	Balances(ctx context.Context, employeeNo int64, year int) ([]BalanceResponse, error)
	SetEntitlement(ctx context.Context, req SetEntitlementRequest) (BalanceResponse, error)
	ApplyApprovedLeave(ctx context.Context, l *EmployeeLeave) error
}

type service struct {
	tx        txmanager.Manager
	repo      Repository
	directory employee.Directory
	approvals approval.Submitter
	logger    *zap.Logger
}

func NewService(tx txmanager.Manager, repo Repository, directory employee.Directory, approvals approval.Submitter, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{tx: tx, repo: repo, directory: directory, approvals: approvals, logger: l}
}

func (s *service) Create(ctx context.Context, employeeNo int64, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.Int64("employee_no", employeeNo),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	emp, err := s.directory.FindByNo(ctx, employeeNo)
	if err != nil {
		return LeaveResponse{}, err
	}
	scope := approval.EmployeeScope(emp)

	l := &EmployeeLeave{
		ID:             uuid.New(),
		EmployeeNo:     employeeNo,
		DepartmentCode: scope.DepartmentCode,
		ProjectCode:    scope.ProjectCode,
		LeaveType:      req.LeaveType,
		StartDate:      startDate,
		EndDate:        endDate,
		TotalDays:      int(endDate.Sub(startDate).Hours()/24) + 1,
		Reason:         req.Reason,
		CreatedBy:      employeeNo,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		overlap, err := s.repo.HasOverlappingPeriod(txCtx, employeeNo, startDate, endDate)
		if err != nil {
			return err
		}
		if overlap {
			s.logger.Warn("create leave overlap detected",
				zap.Int64("employee_no", employeeNo),
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate),
			)
			return leaveerrors.ErrLeaveOverlap
		}
		if err := s.checkBalance(txCtx, l); err != nil {
			return err
		}
		return s.approvals.Submit(txCtx, approval.TypeLeave, l)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.Int64("employee_no", employeeNo),
		zap.Int("total_days", l.TotalDays),
	)
	return mapToResponse(*l), nil
}

// checkBalance is advisory at submission; Consume enforces it again on
// final approval.
func (s *service) checkBalance(ctx context.Context, l *EmployeeLeave) error {
	if !NeedsBalance(l.LeaveType) {
		return nil
	}
	for year, days := range l.DaysByYear() {
		b, err := s.repo.Balance(ctx, l.EmployeeNo, l.LeaveType, year)
		if err != nil {
			return err
		}
		if b.Available() < days {
			return leaveerrors.ErrInsufficientBalance
		}
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) ListMine(ctx context.Context, employeeNo int64) ([]LeaveResponse, error) {
	leaves, err := s.repo.ListByEmployee(ctx, employeeNo)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Cancel(ctx context.Context, employeeNo int64, id uuid.UUID) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if l.EmployeeNo != employeeNo {
		return leaveerrors.ErrNotLeaveOwner
	}

	ok, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return leaveerrors.ErrLeaveNotCancellable
	}
	s.logger.Info("leave cancelled", zap.String("leave_id", id.String()))
	return nil
}

func (s *service) Balances(ctx context.Context, employeeNo int64, year int) ([]BalanceResponse, error) {
	rows, err := s.repo.Balances(ctx, employeeNo, year)
	if err != nil {
		return nil, err
	}
	out := make([]BalanceResponse, len(rows))
	for i, b := range rows {
		out[i] = mapBalance(b)
	}
	return out, nil
}

func (s *service) SetEntitlement(ctx context.Context, req SetEntitlementRequest) (BalanceResponse, error) {
	if req.EntitledDays < 0 {
		return BalanceResponse{}, leaveerrors.ErrInvalidEntitlement
	}
	b := &LeaveBalance{
		ID:           uuid.New(),
		EmployeeNo:   req.EmployeeNo,
		LeaveType:    req.LeaveType,
		Year:         req.Year,
		EntitledDays: req.EntitledDays,
	}
	if err := s.repo.UpsertEntitlement(ctx, b); err != nil {
		return BalanceResponse{}, err
	}

	stored, err := s.repo.Balance(ctx, req.EmployeeNo, req.LeaveType, req.Year)
	if err != nil {
		return BalanceResponse{}, err
	}
	return mapBalance(*stored), nil
}

// ApplyApprovedLeave draws the leave from the balance of every year it
// touches. It runs inside the approval transaction, so a shortfall rolls the
// approval back.
func (s *service) ApplyApprovedLeave(ctx context.Context, l *EmployeeLeave) error {
	if !NeedsBalance(l.LeaveType) {
		return nil
	}

	byYear := l.DaysByYear()
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, year := range years {
		ok, err := s.repo.Consume(ctx, l.EmployeeNo, l.LeaveType, year, byYear[year])
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Warn("leave balance shortfall on approval",
				zap.String("leave_id", l.ID.String()),
				zap.Int("year", year),
			)
			return leaveerrors.ErrInsufficientBalance
		}
	}

	s.logger.Info("leave balance consumed",
		zap.String("leave_id", l.ID.String()),
		zap.Int64("employee_no", l.EmployeeNo),
		zap.Int("days", l.TotalDays),
	)
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l EmployeeLeave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeNo:      l.EmployeeNo,
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          string(l.Status),
		CreatedBy:       l.CreatedBy,
		NextApproval:    l.NextApproval,
		NextAppLevel:    l.NextAppLevel,
		ApprovedBy:      l.ApprovedBy,
		RejectionReason: l.RejectionReason,
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []EmployeeLeave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapBalance(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		LeaveType:     b.LeaveType,
		Year:          b.Year,
		EntitledDays:  b.EntitledDays,
		UsedDays:      b.UsedDays,
		AvailableDays: b.Available(),
	}
}
