package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	approvalerrors "go-hrms/internal/approval/errors"
	"go-hrms/internal/shared/txmanager"
)

type entity[T any] interface {
	*T
	Request
}

// Store is the gorm Persister shared by every approvable table. The table
// needs an id primary key, a created_at column and the embedded State.
type Store[T any, P entity[T]] struct {
	db *gorm.DB
}

func NewStore[T any, P entity[T]](db *gorm.DB) *Store[T, P] {
	return &Store[T, P]{db: db}
}

func (s *Store[T, P]) Load(ctx context.Context, id uuid.UUID) (P, error) {
	var row T
	err := txmanager.GetDB(ctx, s.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approvalerrors.ErrRequestNotFound
		}
		return nil, err
	}
	return P(&row), nil
}

func (s *Store[T, P]) Create(ctx context.Context, req P) error {
	return txmanager.GetDB(ctx, s.db).Create(req).Error
}

// Save writes the approval columns only when the stored row still carries
// prev.
func (s *Store[T, P]) Save(ctx context.Context, req P, prev State) error {
	st := req.ApprovalState()

	q := txmanager.GetDB(ctx, s.db).
		Model(new(T)).
		Where("id = ? AND status = ? AND version = ?", req.RequestID(), prev.Status, prev.Version)
	q = whereNullable(q, "next_approval", prev.NextApproval)
	q = whereNullable(q, "next_app_level", prev.NextAppLevel)

	res := q.Updates(map[string]any{
		"status":           st.Status,
		"next_approval":    st.NextApproval,
		"next_app_level":   st.NextAppLevel,
		"approved_by":      st.ApprovedBy,
		"approved_at":      st.ApprovedAt,
		"rejected_by":      st.RejectedBy,
		"rejected_at":      st.RejectedAt,
		"rejection_reason": st.RejectionReason,
		"version":          st.Version,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &ConcurrentModificationError{Entity: entityName[T](), ID: req.RequestID().String()}
	}
	return nil
}

func (s *Store[T, P]) Pending(ctx context.Context, approverNo int64) ([]P, error) {
	var rows []T
	err := txmanager.GetDB(ctx, s.db).
		Where("status = ? AND next_approval = ?", StatusPending, approverNo).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]P, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out, nil
}

func whereNullable[V any](q *gorm.DB, column string, v *V) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}

func entityName[T any]() string {
	return strings.TrimPrefix(fmt.Sprintf("%T", new(T)), "*")
}
