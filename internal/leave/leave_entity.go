package leave

import (
	"time"

	"github.com/google/uuid"

	"go-hrms/internal/approval"
	"go-hrms/internal/approvalchain"
)

const (
	TypeAnnual = "ANNUAL"
	TypeSick   = "SICK"
	TypeUnpaid = "UNPAID"
)

type EmployeeLeave struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo     int64     `gorm:"not null;index:idx_leaves_employee_dates,priority:1"`
	DepartmentCode string    `gorm:"type:varchar(30);not null;default:''"`
	ProjectCode    string    `gorm:"type:varchar(30);not null;default:''"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates,priority:2"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates,priority:3"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`
	CreatedBy int64     `gorm:"not null"`

	approval.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmployeeLeave) TableName() string {
	return "employee_leaves"
}

func (l *EmployeeLeave) RequestID() uuid.UUID           { return l.ID }
func (l *EmployeeLeave) RequesterNo() int64             { return l.EmployeeNo }
func (l *EmployeeLeave) ApprovalState() *approval.State { return &l.State }

func (l *EmployeeLeave) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{DepartmentCode: l.DepartmentCode, ProjectCode: l.ProjectCode}
}

// DaysByYear splits the leave into calendar days per year, so a leave
// crossing New Year draws on both balances.
func (l EmployeeLeave) DaysByYear() map[int]int {
	out := map[int]int{}
	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
		out[d.Year()]++
	}
	return out
}

// NeedsBalance is false for leave types that are not drawn from an
// entitlement.
func NeedsBalance(leaveType string) bool {
	return leaveType != TypeUnpaid
}

type LeaveBalance struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo   int64     `gorm:"not null;uniqueIndex:uq_leave_balance,priority:1"`
	LeaveType    string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_balance,priority:2"`
	Year         int       `gorm:"not null;uniqueIndex:uq_leave_balance,priority:3"`
	EntitledDays int       `gorm:"not null;default:0"`
	UsedDays     int       `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) Available() int {
	return b.EntitledDays - b.UsedDays
}
