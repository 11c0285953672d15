package leave

import (
	"context"

	"go-hrms/internal/approval"
)

func ApprovalHandler(svc Service, store approval.Persister[*EmployeeLeave]) approval.Handler {
	return approval.NewHandler(approval.TypeLeave, store,
		func(ctx context.Context, l *EmployeeLeave, _ int64) error {
			return svc.ApplyApprovedLeave(ctx, l)
		})
}
