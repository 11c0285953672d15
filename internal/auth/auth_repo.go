package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-hrms/internal/shared/txmanager"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	// FindByEmployeeNo returns nil when the employee has no credential.
	FindByEmployeeNo(ctx context.Context, employeeNo int64) (*Credential, error)
	Save(ctx context.Context, c *Credential) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployeeNo(ctx context.Context, employeeNo int64) (*Credential, error) {
	var c Credential
	err := txmanager.GetDB(ctx, r.db).Where("employee_no = ?", employeeNo).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Save(ctx context.Context, c *Credential) error {
	return txmanager.GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_no"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "is_active", "updated_at"}),
		}).
		Create(c).Error
}
