package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-hrms/internal/approval"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/txmanager"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Attendance) error
	// FindByEmployeeAndDate locks the row for the enclosing transaction.
	FindByEmployeeAndDate(ctx context.Context, employeeNo int64, date time.Time) (*Attendance, error)
	ListByEmployee(ctx context.Context, employeeNo int64, from, to time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	Sum(ctx context.Context, metric Metric, employeeNo int64, from, to time.Time) (decimal.Decimal, error)
	HasActiveManualRequest(ctx context.Context, employeeNo int64, date time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return txmanager.GetDB(ctx, r.db).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeNo int64, date time.Time) (*Attendance, error) {
	var a Attendance
	err := txmanager.GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_no = ?", employeeNo).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeNo int64, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ?", employeeNo).
		Where("attendance_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return txmanager.GetDB(ctx, r.db).Save(a).Error
}

func (r *repository) Sum(ctx context.Context, metric Metric, employeeNo int64, from, to time.Time) (decimal.Decimal, error) {
	expr, ok := metricColumns[metric]
	if !ok {
		return decimal.Zero, attendanceerrors.ErrUnknownMetric
	}

	var total decimal.Decimal
	err := txmanager.GetDB(ctx, r.db).
		Model(&Attendance{}).
		Select("COALESCE(SUM("+expr+"), 0)").
		Where("employee_no = ?", employeeNo).
		Where("attendance_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Row().
		Scan(&total)
	return total, err
}

func (r *repository) HasActiveManualRequest(ctx context.Context, employeeNo int64, date time.Time) (bool, error) {
	var count int64
	err := txmanager.GetDB(ctx, r.db).
		Model(&ManualAttendanceRequest{}).
		Where("employee_no = ? AND attendance_date = ?", employeeNo, date.Format(dateLayout)).
		Where("status IN ?", []approval.Status{approval.StatusPending, approval.StatusApproved}).
		Count(&count).Error
	return count > 0, err
}
