package loan

import (
	"context"

	"go-hrms/internal/approval"
)

// ApprovalHandlers registers loans and postponement requests with the
// approval engine.
func ApprovalHandlers(svc Service, loans approval.Persister[*Loan], postponements approval.Persister[*PostponementRequest]) []approval.Handler {
	return []approval.Handler{
		approval.NewHandler(approval.TypeLoan, loans,
			func(ctx context.Context, l *Loan, _ int64) error {
				return svc.ApplyApprovedLoan(ctx, l)
			}),
		approval.NewHandler(approval.TypeLoanPostponement, postponements,
			func(ctx context.Context, p *PostponementRequest, _ int64) error {
				return svc.ApplyApprovedPostponement(ctx, p)
			}),
	}
}
