package adjustment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	adjustmenterrors "go-hrms/internal/adjustment/errors"
	"go-hrms/internal/approval"
	"go-hrms/internal/employee"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=adjustment_service.go -destination=mock/adjustment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorNo int64, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (AdjustmentResponse, error)
	Active(ctx context.Context, employeeNo int64, kind Kind, from, to time.Time) ([]MonthlyAdjustment, error)
	MarkApplied(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      Repository
	directory employee.Directory
	approvals approval.Submitter
	logger    *zap.Logger
}

func NewService(repo Repository, directory employee.Directory, approvals approval.Submitter, logger ...*zap.Logger) Service {
	l := zap.L().Named("adjustment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("adjustment.service")
	}
	return &service{repo: repo, directory: directory, approvals: approvals, logger: l}
}

func (s *service) Create(ctx context.Context, actorNo int64, req CreateAdjustmentRequest) (AdjustmentResponse, error) {
	kind := Kind(req.Kind)
	if isReservedTypeCode(kind, req.TypeCode) {
		return AdjustmentResponse{}, adjustmenterrors.ErrReservedTypeCode
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidAmount
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return AdjustmentResponse{}, adjustmenterrors.ErrInvalidDateFormat
	}
	var end *time.Time
	if req.EndDate != "" {
		e, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return AdjustmentResponse{}, adjustmenterrors.ErrInvalidDateFormat
		}
		if e.Before(start) {
			return AdjustmentResponse{}, adjustmenterrors.ErrInvalidDateRange
		}
		end = &e
	}

	emp, err := s.directory.FindByNo(ctx, req.EmployeeNo)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	scope := approval.EmployeeScope(emp)

	a := &MonthlyAdjustment{
		ID:             uuid.New(),
		EmployeeNo:     req.EmployeeNo,
		DepartmentCode: scope.DepartmentCode,
		ProjectCode:    scope.ProjectCode,
		Kind:           kind,
		TypeCode:       req.TypeCode,
		Description:    strings.TrimSpace(req.Description),
		Amount:         amount.Round(4),
		Recurrence:     Recurrence(req.Recurrence),
		StartDate:      start,
		EndDate:        end,
		CreatedBy:      actorNo,
	}

	if err := s.approvals.Submit(ctx, kind.RequestType(), a); err != nil {
		s.logger.Warn("submit adjustment failed",
			zap.Int64("employee_no", req.EmployeeNo),
			zap.String("kind", req.Kind),
			zap.Error(err),
		)
		return AdjustmentResponse{}, err
	}

	s.logger.Info("adjustment submitted",
		zap.String("adjustment_id", a.ID.String()),
		zap.String("kind", req.Kind),
		zap.Int64("employee_no", req.EmployeeNo),
		zap.Int64("created_by", actorNo),
	)
	return mapAdjustment(*a), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (AdjustmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	return mapAdjustment(*a), nil
}

func (s *service) Active(ctx context.Context, employeeNo int64, kind Kind, from, to time.Time) ([]MonthlyAdjustment, error) {
	rows, err := s.repo.ActiveFor(ctx, employeeNo, kind, from, to)
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, a := range rows {
		if a.ActiveIn(from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *service) MarkApplied(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !a.OneTime() {
		return adjustmenterrors.ErrNotApplicable
	}

	ok, err := s.repo.UpdateStatus(ctx, id, []approval.Status{approval.StatusApproved}, approval.StatusApplied)
	if err != nil {
		return err
	}
	if !ok {
		return adjustmenterrors.ErrNotApplicable
	}
	s.logger.Info("adjustment applied", zap.String("adjustment_id", id.String()))
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	allowed := []approval.Status{approval.StatusPending, approval.StatusApproved, approval.StatusRejected}
	ok, err := s.repo.UpdateStatus(ctx, id, allowed, approval.StatusDeleted)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return err
		}
		return adjustmenterrors.ErrCannotDelete
	}
	s.logger.Info("adjustment deleted", zap.String("adjustment_id", id.String()))
	return nil
}

func isReservedTypeCode(kind Kind, code int) bool {
	switch kind {
	case KindDeduction:
		return code >= ReservedTypeCodeMin && code <= ReservedTypeCodeMax
	case KindAllowance:
		return code == ReservedAllowanceTypeCode
	}
	return false
}
