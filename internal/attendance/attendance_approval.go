package attendance

import (
	"context"

	"go-hrms/internal/approval"
)

// ApprovalHandler registers manual attendance requests with the engine.
func ApprovalHandler(svc Service, store approval.Persister[*ManualAttendanceRequest]) approval.Handler {
	return approval.NewHandler(approval.TypeManualAttendance, store,
		func(ctx context.Context, m *ManualAttendanceRequest, _ int64) error {
			return svc.ApplyApprovedManual(ctx, m)
		})
}
