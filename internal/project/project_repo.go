package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-hrms/internal/employee"
	projecterrors "go-hrms/internal/project/errors"
	"go-hrms/internal/shared/txmanager"
)

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	ProjectExists(ctx context.Context, code string) (bool, error)
	FindPayment(ctx context.Context, id uuid.UUID) (*ProjectPaymentRequest, error)
	FindTransfer(ctx context.Context, id uuid.UUID) (*ProjectTransferRequest, error)
	FindLaborRequest(ctx context.Context, id uuid.UUID) (*ProjectLaborRequestHeader, error)
	PaymentsByProject(ctx context.Context, code string) ([]ProjectPaymentRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ProjectExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := txmanager.GetDB(ctx, r.db).
		Model(&employee.Project{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindPayment(ctx context.Context, id uuid.UUID) (*ProjectPaymentRequest, error) {
	var p ProjectPaymentRequest
	if err := txmanager.GetDB(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *repository) FindTransfer(ctx context.Context, id uuid.UUID) (*ProjectTransferRequest, error) {
	var p ProjectTransferRequest
	if err := txmanager.GetDB(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *repository) FindLaborRequest(ctx context.Context, id uuid.UUID) (*ProjectLaborRequestHeader, error) {
	var p ProjectLaborRequestHeader
	if err := txmanager.GetDB(ctx, r.db).Preload("Lines").First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *repository) PaymentsByProject(ctx context.Context, code string) ([]ProjectPaymentRequest, error) {
	var rows []ProjectPaymentRequest
	err := txmanager.GetDB(ctx, r.db).
		Where("project_code = ?", code).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrRequestNotFound
	}
	return err
}
