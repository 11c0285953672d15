package payroll

import (
	"context"

	"go-hrms/internal/approval"
)

// ApprovalHandler registers salary versions under PAYROLL. The final level
// settles the installments and one-time adjustments the version consumed.
func ApprovalHandler(svc Service, store approval.Persister[*SalaryHeader]) approval.Handler {
	return approval.NewHandler(approval.TypePayroll, store,
		func(ctx context.Context, h *SalaryHeader, _ int64) error {
			return svc.ApplyApprovedPayroll(ctx, h)
		})
}
