package project

import (
	"go-hrms/internal/approval"
)

// ApprovalHandlers registers the project request types. None of them has a
// side effect on final approval.
func ApprovalHandlers(
	payments approval.Persister[*ProjectPaymentRequest],
	transfers approval.Persister[*ProjectTransferRequest],
	labor approval.Persister[*ProjectLaborRequestHeader],
) []approval.Handler {
	return []approval.Handler{
		approval.NewHandler(approval.TypeProjectPayment, payments, nil),
		approval.NewHandler(approval.TypeProjectTransfer, transfers, nil),
		approval.NewHandler(approval.TypeLaborRequest, labor, nil),
	}
}
