package loan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-hrms/internal/approval"
	loanerrors "go-hrms/internal/loan/errors"
	"go-hrms/internal/shared/txmanager"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Loan, error)
	// LockByID reads the loan with a row lock held until the transaction
	// ends. Balance changes on one loan are serialized through it.
	LockByID(ctx context.Context, id uuid.UUID) (*Loan, error)
	UpdateBalance(ctx context.Context, loan *Loan) error
	CreateInstallments(ctx context.Context, items []Installment) error
	LockInstallment(ctx context.Context, id uuid.UUID) (*Installment, error)
	UpdateInstallment(ctx context.Context, item *Installment) error
	// DueInstallments lists outstanding installments of active loans with a
	// due date in [from, to].
	DueInstallments(ctx context.Context, employeeNo int64, from, to time.Time) ([]Installment, error)
	HasPendingPostponement(ctx context.Context, installmentID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Loan, error) {
	var l Loan
	err := txmanager.GetDB(ctx, r.db).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("seq_no ASC") }).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, notFound(err, loanerrors.ErrLoanNotFound)
	}
	return &l, nil
}

func (r *repository) LockByID(ctx context.Context, id uuid.UUID) (*Loan, error) {
	var l Loan
	err := txmanager.GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, notFound(err, loanerrors.ErrLoanNotFound)
	}
	return &l, nil
}

func (r *repository) UpdateBalance(ctx context.Context, l *Loan) error {
	return txmanager.GetDB(ctx, r.db).
		Model(&Loan{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"remaining_balance": l.RemainingBalance,
			"is_active":         l.IsActive,
		}).Error
}

func (r *repository) CreateInstallments(ctx context.Context, items []Installment) error {
	if len(items) == 0 {
		return nil
	}
	return txmanager.GetDB(ctx, r.db).Create(&items).Error
}

func (r *repository) LockInstallment(ctx context.Context, id uuid.UUID) (*Installment, error) {
	var it Installment
	err := txmanager.GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&it).Error
	if err != nil {
		return nil, notFound(err, loanerrors.ErrInstallmentNotFound)
	}
	return &it, nil
}

func (r *repository) UpdateInstallment(ctx context.Context, it *Installment) error {
	return txmanager.GetDB(ctx, r.db).
		Model(&Installment{}).
		Where("id = ?", it.ID).
		Updates(map[string]any{
			"due_date":     it.DueDate,
			"status":       it.Status,
			"paid_date":    it.PaidDate,
			"paid_amount":  it.PaidAmount,
			"salary_month": it.SalaryMonth,
		}).Error
}

func (r *repository) DueInstallments(ctx context.Context, employeeNo int64, from, to time.Time) ([]Installment, error) {
	var items []Installment
	err := txmanager.GetDB(ctx, r.db).
		Joins("JOIN loans ON loans.id = loan_installments.loan_id").
		Where("loan_installments.employee_no = ?", employeeNo).
		Where("loans.is_active = ?", true).
		Where("loan_installments.status IN ?", []InstallmentStatus{InstallmentUnpaid, InstallmentPostponed}).
		Where("loan_installments.due_date BETWEEN ? AND ?", from, to).
		Order("loan_installments.due_date ASC, loan_installments.seq_no ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) HasPendingPostponement(ctx context.Context, installmentID uuid.UUID) (bool, error) {
	var count int64
	err := txmanager.GetDB(ctx, r.db).
		Model(&PostponementRequest{}).
		Where("installment_id = ? AND status = ?", installmentID, approval.StatusPending).
		Count(&count).Error
	return count > 0, err
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
