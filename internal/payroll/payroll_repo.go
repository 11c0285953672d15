package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-hrms/internal/approval"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/txmanager"
)

// Repository reads and retires salary versions. New versions are inserted
// by the approval engine through the approval store.
//
//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	// Latest returns the latest version with its lines.
	Latest(ctx context.Context, employeeNo int64, month time.Time) (*SalaryHeader, error)
	// LockLatest locks the latest version row, or returns nil when the month
	// was never calculated.
	LockLatest(ctx context.Context, employeeNo int64, month time.Time) (*SalaryHeader, error)
	History(ctx context.Context, employeeNo int64, month time.Time) ([]SalaryHeader, error)
	// EarliestUnapprovedBefore returns the oldest month before month whose
	// latest version is not approved, or nil.
	EarliestUnapprovedBefore(ctx context.Context, employeeNo int64, month time.Time) (*SalaryHeader, error)
	MaxVersion(ctx context.Context, employeeNo int64, month time.Time) (int, error)
	// Supersede clears is_latest and cancels the version if it is still
	// pending approval.
	Supersede(ctx context.Context, h *SalaryHeader) error
	Details(ctx context.Context, headerID uuid.UUID) ([]SalaryDetail, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Latest(ctx context.Context, employeeNo int64, month time.Time) (*SalaryHeader, error) {
	var h SalaryHeader
	err := txmanager.GetDB(ctx, r.db).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("employee_no = ? AND salary_month = ? AND is_latest = ?", employeeNo, month, true).
		First(&h).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *repository) LockLatest(ctx context.Context, employeeNo int64, month time.Time) (*SalaryHeader, error) {
	var h SalaryHeader
	err := txmanager.GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_no = ? AND salary_month = ? AND is_latest = ?", employeeNo, month, true).
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) History(ctx context.Context, employeeNo int64, month time.Time) ([]SalaryHeader, error) {
	var out []SalaryHeader
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ? AND salary_month = ?", employeeNo, month).
		Order("salary_version DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) EarliestUnapprovedBefore(ctx context.Context, employeeNo int64, month time.Time) (*SalaryHeader, error) {
	var h SalaryHeader
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ? AND salary_month < ? AND is_latest = ? AND status <> ?",
			employeeNo, month, true, approval.StatusApproved).
		Order("salary_month ASC").
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) MaxVersion(ctx context.Context, employeeNo int64, month time.Time) (int, error) {
	var v int
	err := txmanager.GetDB(ctx, r.db).
		Model(&SalaryHeader{}).
		Select("COALESCE(MAX(salary_version), 0)").
		Where("employee_no = ? AND salary_month = ?", employeeNo, month).
		Scan(&v).Error
	return v, err
}

func (r *repository) Supersede(ctx context.Context, h *SalaryHeader) error {
	updates := map[string]any{"is_latest": false}
	if h.Status == approval.StatusPending {
		updates["status"] = approval.StatusCancelled
		updates["next_approval"] = nil
		updates["next_app_level"] = nil
		updates["version"] = h.Version + 1
	}

	res := txmanager.GetDB(ctx, r.db).
		Model(&SalaryHeader{}).
		Where("id = ? AND is_latest = ?", h.ID, true).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &approval.ConcurrentModificationError{Entity: "SalaryHeader", ID: h.ID.String()}
	}
	return nil
}

func (r *repository) Details(ctx context.Context, headerID uuid.UUID) ([]SalaryDetail, error) {
	var out []SalaryDetail
	err := txmanager.GetDB(ctx, r.db).
		Where("header_id = ?", headerID).
		Order("line_no ASC").
		Find(&out).Error
	return out, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	return err
}
