package adjustment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-hrms/internal/approval"
	"go-hrms/internal/approvalchain"
)

type Kind string

const (
	KindAllowance Kind = "ALLOWANCE"
	KindDeduction Kind = "DEDUCTION"
)

// RequestType maps the kind to the approval chain it goes through.
func (k Kind) RequestType() approval.RequestType {
	if k == KindDeduction {
		return approval.TypeDeduction
	}
	return approval.TypeAllowance
}

// Recurrence FIXED repeats every month in range; VARIABLE is paid once.
type Recurrence string

const (
	RecurrenceFixed    Recurrence = "FIXED"
	RecurrenceVariable Recurrence = "VARIABLE"
)

// Type codes generated by payroll itself; manual entries may not use them.
const (
	ReservedTypeCodeMin = 20
	ReservedTypeCodeMax = 25

	// Overtime is paid out by payroll on the allowance side.
	ReservedAllowanceTypeCode = 19
)

type MonthlyAdjustment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo     int64           `gorm:"not null;index:idx_adjustment_employee_kind,priority:1"`
	DepartmentCode string          `gorm:"type:varchar(30);not null;default:''"`
	ProjectCode    string          `gorm:"type:varchar(30);not null;default:''"`
	Kind           Kind            `gorm:"type:varchar(20);not null;index:idx_adjustment_employee_kind,priority:2"`
	TypeCode       int             `gorm:"not null"`
	Description    string          `gorm:"type:varchar(200)"`
	Amount         decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Recurrence     Recurrence      `gorm:"type:varchar(20);not null"`
	StartDate      time.Time       `gorm:"type:date;not null"`
	EndDate        *time.Time      `gorm:"type:date"`
	CreatedBy      int64           `gorm:"not null"`

	approval.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MonthlyAdjustment) TableName() string {
	return "emp_monthly_adjustments"
}

func (a *MonthlyAdjustment) RequestID() uuid.UUID           { return a.ID }
func (a *MonthlyAdjustment) RequesterNo() int64             { return a.EmployeeNo }
func (a *MonthlyAdjustment) ApprovalState() *approval.State { return &a.State }

func (a *MonthlyAdjustment) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{DepartmentCode: a.DepartmentCode, ProjectCode: a.ProjectCode}
}

// ActiveIn reports whether the adjustment counts for a payroll covering
// [from, to]: approved, started by to and not ended before from.
func (a MonthlyAdjustment) ActiveIn(from, to time.Time) bool {
	if a.Status != approval.StatusApproved {
		return false
	}
	if a.StartDate.After(to) {
		return false
	}
	return a.EndDate == nil || !a.EndDate.Before(from)
}

// OneTime entries are consumed by the first approved payroll.
func (a MonthlyAdjustment) OneTime() bool {
	return a.Recurrence == RecurrenceVariable
}
