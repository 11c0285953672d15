package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-hrms/internal/approval"
	"go-hrms/internal/approvalchain"
)

type SalaryType string

const (
	SalaryTypeWork            SalaryType = "WORK"
	SalaryTypeFinalSettlement SalaryType = "FINAL_SETTLEMENT"
)

type LineKind string

const (
	LineAllowance LineKind = "ALLOWANCE"
	LineDeduction LineKind = "DEDUCTION"
)

// LineSource tells where a detail line came from.
type LineSource string

const (
	SourceBreakdown  LineSource = "BREAKDOWN"
	SourceAdjustment LineSource = "ADJUSTMENT"
	SourceOvertime   LineSource = "OVERTIME"
	SourceAttendance LineSource = "ATTENDANCE"
	SourceLoan       LineSource = "LOAN"
)

// Type codes written by the pipeline itself. 23 and 24 are reserved.
const (
	TypeCodeOvertime = 19
	TypeCodeDelay    = 20
	TypeCodeAbsence  = 21
	TypeCodeEarlyOut = 22
	TypeCodeLoan     = 25
)

const (
	lineAmountPlaces     = 4
	salaryVersionCounter = "SALARY_VERSION"
	monthLayout          = "2006-01"
)

// SalaryHeader is one calculated version of an employee's salary month.
// Exactly one version per (employee, month) is latest; older versions are
// kept for audit and never change once approved.
type SalaryHeader struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo     int64      `gorm:"not null;uniqueIndex:uq_salary_header_version,priority:1;uniqueIndex:uq_salary_header_latest,priority:1,where:is_latest"`
	SalaryMonth    time.Time  `gorm:"type:date;not null;uniqueIndex:uq_salary_header_version,priority:2;uniqueIndex:uq_salary_header_latest,priority:2,where:is_latest"`
	SalaryVersion  int        `gorm:"not null;uniqueIndex:uq_salary_header_version,priority:3"`
	IsLatest       bool       `gorm:"not null;default:true;index"`
	SalaryType     SalaryType `gorm:"type:varchar(20);not null;default:'WORK'"`
	DepartmentCode string     `gorm:"type:varchar(30);not null;default:''"`
	ProjectCode    string     `gorm:"type:varchar(30);not null;default:''"`

	GrossSalary     decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	TotalAllowances decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	TotalOvertime   decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	TotalAbsence    decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	TotalLoans      decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`

	RecalculationReason *string `gorm:"type:text"`
	CalculatedBy        int64   `gorm:"not null"`

	approval.State `gorm:"embedded"`

	Details []SalaryDetail `gorm:"foreignKey:HeaderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryHeader) TableName() string {
	return "salary_headers"
}

func (h *SalaryHeader) RequestID() uuid.UUID           { return h.ID }
func (h *SalaryHeader) RequesterNo() int64             { return h.EmployeeNo }
func (h *SalaryHeader) ApprovalState() *approval.State { return &h.State }

func (h *SalaryHeader) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{DepartmentCode: h.DepartmentCode, ProjectCode: h.ProjectCode}
}

// RecalculateTotals derives every total from the detail lines.
// NetSalary is always allowances minus deductions.
func (h *SalaryHeader) RecalculateTotals() {
	gross, allow, overtime := decimal.Zero, decimal.Zero, decimal.Zero
	ded, absence, loans := decimal.Zero, decimal.Zero, decimal.Zero

	for _, d := range h.Details {
		switch d.Kind {
		case LineAllowance:
			allow = allow.Add(d.Amount)
			switch d.Source {
			case SourceBreakdown:
				gross = gross.Add(d.Amount)
			case SourceOvertime:
				overtime = overtime.Add(d.Amount)
			}
		case LineDeduction:
			ded = ded.Add(d.Amount)
			switch d.Source {
			case SourceAttendance:
				absence = absence.Add(d.Amount)
			case SourceLoan:
				loans = loans.Add(d.Amount)
			}
		}
	}

	h.GrossSalary = gross
	h.TotalAllowances = allow
	h.TotalOvertime = overtime
	h.TotalDeductions = ded
	h.TotalAbsence = absence
	h.TotalLoans = loans
	h.NetSalary = allow.Sub(ded)
}

// SalaryDetail is one allowance or deduction line. SourceID points at the
// adjustment or loan installment the line consumed, if any.
type SalaryDetail struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HeaderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo      int             `gorm:"not null"`
	Kind        LineKind        `gorm:"type:varchar(10);not null"`
	Source      LineSource      `gorm:"type:varchar(20);not null"`
	TypeCode    int             `gorm:"not null"`
	Description string          `gorm:"type:varchar(200);not null;default:''"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	SourceID    *uuid.UUID      `gorm:"type:uuid;index"`
	OneTime     bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (SalaryDetail) TableName() string {
	return "salary_details"
}
