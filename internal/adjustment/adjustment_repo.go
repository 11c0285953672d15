package adjustment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	adjustmenterrors "go-hrms/internal/adjustment/errors"
	"go-hrms/internal/approval"
	"go-hrms/internal/shared/txmanager"
)

//go:generate mockgen -source=adjustment_repo.go -destination=mock/adjustment_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MonthlyAdjustment, error)
	// ActiveFor returns approved adjustments of kind overlapping [from, to].
	ActiveFor(ctx context.Context, employeeNo int64, kind Kind, from, to time.Time) ([]MonthlyAdjustment, error)
	// UpdateStatus moves id from one of allowed to status and reports
	// whether a row changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, allowed []approval.Status, status approval.Status) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*MonthlyAdjustment, error) {
	var a MonthlyAdjustment
	err := txmanager.GetDB(ctx, r.db).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, adjustmenterrors.ErrAdjustmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ActiveFor(ctx context.Context, employeeNo int64, kind Kind, from, to time.Time) ([]MonthlyAdjustment, error) {
	var rows []MonthlyAdjustment
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ? AND kind = ? AND status = ?", employeeNo, kind, approval.StatusApproved).
		Where("start_date <= ?", to).
		Where("end_date IS NULL OR end_date >= ?", from).
		Order("type_code ASC, start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, allowed []approval.Status, status approval.Status) (bool, error) {
	res := txmanager.GetDB(ctx, r.db).
		Model(&MonthlyAdjustment{}).
		Where("id = ? AND status IN ?", id, allowed).
		Updates(map[string]any{
			"status":         status,
			"next_approval":  nil,
			"next_app_level": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
