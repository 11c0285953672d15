package payroll

import (
	"fmt"
	"time"

	"go-hrms/internal/approval"
	payrollerrors "go-hrms/internal/payroll/errors"
)

// PriorPayrollUnapprovedError names the earliest month that still blocks
// calculation. Months are approved in order.
type PriorPayrollUnapprovedError struct {
	EmployeeNo int64
	Month      time.Time
	Status     approval.Status
}

func (e *PriorPayrollUnapprovedError) Error() string {
	return fmt.Sprintf("employee %d: payroll for %s is %s, not approved",
		e.EmployeeNo, e.Month.Format(monthLayout), e.Status)
}

func (e *PriorPayrollUnapprovedError) Unwrap() error {
	return payrollerrors.ErrPriorPayrollUnapproved
}
