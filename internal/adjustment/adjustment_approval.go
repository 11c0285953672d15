package adjustment

import (
	"context"

	"github.com/google/uuid"

	"go-hrms/internal/approval"
	approvalerrors "go-hrms/internal/approval/errors"
)

// kindStore narrows the shared adjustment table to one kind so allowances
// and deductions run through their own chains.
type kindStore struct {
	approval.Persister[*MonthlyAdjustment]
	kind Kind
}

func (s kindStore) Load(ctx context.Context, id uuid.UUID) (*MonthlyAdjustment, error) {
	a, err := s.Persister.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Kind != s.kind {
		return nil, approvalerrors.ErrRequestNotFound
	}
	return a, nil
}

func (s kindStore) Pending(ctx context.Context, approverNo int64) ([]*MonthlyAdjustment, error) {
	rows, err := s.Persister.Pending(ctx, approverNo)
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, a := range rows {
		if a.Kind == s.kind {
			out = append(out, a)
		}
	}
	return out, nil
}

// ApprovalHandlers registers the ALLOWANCE and DEDUCTION request types.
// Approval only activates the entry; payroll picks it up from there.
func ApprovalHandlers(store approval.Persister[*MonthlyAdjustment]) []approval.Handler {
	return []approval.Handler{
		approval.NewHandler[*MonthlyAdjustment](approval.TypeAllowance, kindStore{store, KindAllowance}, nil),
		approval.NewHandler[*MonthlyAdjustment](approval.TypeDeduction, kindStore{store, KindDeduction}, nil),
	}
}
