package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-hrms/internal/approval"
	"go-hrms/internal/approvalchain"
)

const (
	SourceDevice = "DEVICE"
	SourceManual = "MANUAL"
	SourceHR     = "HR"
)

type Attendance struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo      int64           `gorm:"column:employee_no;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	AttendanceDate  time.Time       `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2"`
	ClockIn         *time.Time      `gorm:"column:clock_in;type:timestamptz"`
	ClockOut        *time.Time      `gorm:"column:clock_out;type:timestamptz"`
	OvertimeHours   decimal.Decimal `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`
	DelayedHours    decimal.Decimal `gorm:"column:delayed_hours;type:numeric(6,2);not null;default:0"`
	EarlyOutHours   decimal.Decimal `gorm:"column:early_out_hours;type:numeric(6,2);not null;default:0"`
	IsAbsent        bool            `gorm:"column:is_absent;not null;default:false"`
	Source          string          `gorm:"column:source;type:varchar(20);not null;default:DEVICE"`
	ManualRequestID *uuid.UUID      `gorm:"column:manual_request_id;type:uuid"`
	Notes           *string         `gorm:"column:notes;type:text"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// Metric names one aggregatable attendance measure.
type Metric string

const (
	MetricOvertime Metric = "OVERTIME"
	MetricDelayed  Metric = "DELAYED"
	MetricEarlyOut Metric = "EARLY_OUT"
	// MetricAbsence counts absent days.
	MetricAbsence Metric = "ABSENCE"
)

var metricColumns = map[Metric]string{
	MetricOvertime: "overtime_hours",
	MetricDelayed:  "delayed_hours",
	MetricEarlyOut: "early_out_hours",
	MetricAbsence:  "CASE WHEN is_absent THEN 1 ELSE 0 END",
}

// Summary is the attendance of one employee over a date range.
type Summary struct {
	OvertimeHours decimal.Decimal
	DelayedHours  decimal.Decimal
	EarlyOutHours decimal.Decimal
	AbsentDays    decimal.Decimal
}

// ManualAttendanceRequest asks for an attendance row the device never
// recorded. At most one pending or approved request exists per date.
type ManualAttendanceRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo     int64     `gorm:"not null;uniqueIndex:uq_manual_attendance_active,priority:1,where:status <> 'REJECTED'"`
	DepartmentCode string    `gorm:"type:varchar(30);not null;default:''"`
	ProjectCode    string    `gorm:"type:varchar(30);not null;default:''"`
	AttendanceDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_manual_attendance_active,priority:2"`
	ClockIn        time.Time `gorm:"type:timestamptz;not null"`
	ClockOut       time.Time `gorm:"type:timestamptz;not null"`
	Reason         string    `gorm:"type:text;not null"`

	approval.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ManualAttendanceRequest) TableName() string {
	return "manual_attendance_requests"
}

func (m *ManualAttendanceRequest) RequestID() uuid.UUID           { return m.ID }
func (m *ManualAttendanceRequest) RequesterNo() int64             { return m.EmployeeNo }
func (m *ManualAttendanceRequest) ApprovalState() *approval.State { return &m.State }

func (m *ManualAttendanceRequest) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{DepartmentCode: m.DepartmentCode, ProjectCode: m.ProjectCode}
}
