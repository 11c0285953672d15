package approval

import (
	"time"

	"github.com/google/uuid"

	"go-hrms/internal/approvalchain"
	"go-hrms/internal/employee"
)

type RequestType string

const (
	TypeLeave            RequestType = "LEAVE"
	TypeLoan             RequestType = "LOAN"
	TypeLoanPostponement RequestType = "LOAN_POSTPONEMENT"
	TypeManualAttendance RequestType = "MANUAL_ATTENDANCE"
	TypeAllowance        RequestType = "ALLOWANCE"
	TypeDeduction        RequestType = "DEDUCTION"
	TypeProjectPayment   RequestType = "PROJECT_PAYMENT"
	TypeProjectTransfer  RequestType = "PROJECT_TRANSFER"
	TypeLaborRequest     RequestType = "LABOR_REQUEST"
	TypePayroll          RequestType = "PAYROLL"
)

// Status is the single lifecycle tag of an approvable record. The engine
// moves PENDING forward; CANCELLED, DELETED and APPLIED belong to the
// owning domain.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusDeleted   Status = "DELETED"
	StatusApplied   Status = "APPLIED"
)

// State is embedded in every approvable entity.
type State struct {
	Status          Status `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	NextApproval    *int64 `gorm:"index"`
	NextAppLevel    *int
	ApprovedBy      *int64
	ApprovedAt      *time.Time
	RejectedBy      *int64
	RejectedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	Version         int     `gorm:"not null;default:0"`
}

func (s State) IsPending() bool {
	return s.Status == StatusPending
}

// Level is the pending level, or 0 when the request is not pending.
func (s State) Level() int {
	if s.NextAppLevel == nil {
		return 0
	}
	return *s.NextAppLevel
}

// Request is the view of an approvable entity the engine works on.
type Request interface {
	RequestID() uuid.UUID
	RequesterNo() int64
	ApprovalScope() approvalchain.Scope
	ApprovalState() *State
}

// EmployeeScope is the chain scope of a request raised by emp.
func EmployeeScope(emp *employee.Employee) approvalchain.Scope {
	var scope approvalchain.Scope
	if emp.DepartmentCode != nil {
		scope.DepartmentCode = *emp.DepartmentCode
	}
	if emp.ProjectCode != nil {
		scope.ProjectCode = *emp.ProjectCode
	}
	return scope
}
