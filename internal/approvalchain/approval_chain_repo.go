package approvalchain

import (
	"context"
	"fmt"

	"go-hrms/internal/shared/txmanager"

	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_chain_repo.go -destination=mock/approval_chain_repo_mock.go -package=mock
type Repository interface {
	// Levels returns the compiled active levels of requestType, ordered by
	// level number.
	Levels(ctx context.Context, requestType string) ([]Level, error)
	Rows(ctx context.Context, requestType string) ([]ChainLevel, error)
	Replace(ctx context.Context, requestType string, rows []ChainLevel) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Rows(ctx context.Context, requestType string) ([]ChainLevel, error) {
	var rows []ChainLevel
	err := txmanager.GetDB(ctx, r.db).
		Where("request_type = ? AND is_active = ?", requestType, true).
		Order("level_no ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load approval chain %s: %w", requestType, err)
	}
	return rows, nil
}

func (r *repository) Levels(ctx context.Context, requestType string) ([]Level, error) {
	rows, err := r.Rows(ctx, requestType)
	if err != nil {
		return nil, err
	}
	return Compile(rows)
}

// Replace swaps the whole configuration of a request type after validating
// it. Requests already in flight keep their next_app_level.
func (r *repository) Replace(ctx context.Context, requestType string, rows []ChainLevel) error {
	for i := range rows {
		rows[i].RequestType = requestType
		rows[i].IsActive = true
	}
	if err := Validate(rows); err != nil {
		return err
	}

	return txmanager.GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_type = ?", requestType).Delete(&ChainLevel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
