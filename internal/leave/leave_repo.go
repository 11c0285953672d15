package leave

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-hrms/internal/approval"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/txmanager"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeeLeave, error)
	ListByEmployee(ctx context.Context, employeeNo int64) ([]EmployeeLeave, error)
	HasOverlappingPeriod(ctx context.Context, employeeNo int64, startDate, endDate time.Time) (bool, error)
	// Cancel moves a PENDING leave to CANCELLED and reports whether it did.
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
	Balance(ctx context.Context, employeeNo int64, leaveType string, year int) (*LeaveBalance, error)
	Balances(ctx context.Context, employeeNo int64, year int) ([]LeaveBalance, error)
	// Consume adds days to the used total and reports false when the
	// entitlement does not cover them.
	Consume(ctx context.Context, employeeNo int64, leaveType string, year, days int) (bool, error)
	UpsertEntitlement(ctx context.Context, b *LeaveBalance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*EmployeeLeave, error) {
	var l EmployeeLeave
	err := txmanager.GetDB(ctx, r.db).First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeNo int64) ([]EmployeeLeave, error) {
	var leaves []EmployeeLeave
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ?", employeeNo).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeNo int64, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := txmanager.GetDB(ctx, r.db).
		Model(&EmployeeLeave{}).
		Where("employee_no = ?", employeeNo).
		Where("status IN ?", []approval.Status{approval.StatusPending, approval.StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	res := txmanager.GetDB(ctx, r.db).
		Model(&EmployeeLeave{}).
		Where("id = ? AND status = ?", id, approval.StatusPending).
		Updates(map[string]any{
			"status":         approval.StatusCancelled,
			"next_approval":  nil,
			"next_app_level": nil,
			"version":        gorm.Expr("version + 1"),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) Balance(ctx context.Context, employeeNo int64, leaveType string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ? AND leave_type = ? AND year = ?", employeeNo, leaveType, year).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrBalanceNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) Balances(ctx context.Context, employeeNo int64, year int) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ? AND year = ?", employeeNo, year).
		Order("leave_type ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Consume(ctx context.Context, employeeNo int64, leaveType string, year, days int) (bool, error) {
	res := txmanager.GetDB(ctx, r.db).
		Model(&LeaveBalance{}).
		Where("employee_no = ? AND leave_type = ? AND year = ?", employeeNo, leaveType, year).
		Where("entitled_days - used_days >= ?", days).
		Update("used_days", gorm.Expr("used_days + ?", days))
	return res.RowsAffected > 0, res.Error
}

func (r *repository) UpsertEntitlement(ctx context.Context, b *LeaveBalance) error {
	return txmanager.GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_no"}, {Name: "leave_type"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"entitled_days", "updated_at"}),
		}).
		Create(b).Error
}
