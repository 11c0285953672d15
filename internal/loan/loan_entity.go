package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-hrms/internal/approval"
	"go-hrms/internal/approvalchain"
)

type InstallmentStatus string

const (
	InstallmentUnpaid    InstallmentStatus = "UNPAID"
	InstallmentPaid      InstallmentStatus = "PAID"
	InstallmentPostponed InstallmentStatus = "POSTPONED"
)

// Loan owns its installments. The schedule is generated on final approval.
type Loan struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo           int64           `gorm:"not null;index"`
	DepartmentCode       string          `gorm:"type:varchar(30);not null;default:''"`
	ProjectCode          string          `gorm:"type:varchar(30);not null;default:''"`
	LoanAmount           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	NoOfInstallments     int             `gorm:"not null"`
	FirstInstallmentDate time.Time       `gorm:"type:date;not null"`
	RemainingBalance     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	IsActive             bool            `gorm:"not null;default:false;index"`
	Reason               *string         `gorm:"type:text"`

	approval.State `gorm:"embedded"`

	Installments []Installment `gorm:"foreignKey:LoanID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) RequestID() uuid.UUID           { return l.ID }
func (l *Loan) RequesterNo() int64             { return l.EmployeeNo }
func (l *Loan) ApprovalState() *approval.State { return &l.State }

func (l *Loan) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{DepartmentCode: l.DepartmentCode, ProjectCode: l.ProjectCode}
}

type Installment struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoanID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_loan_installment_seq,priority:1"`
	EmployeeNo  int64               `gorm:"not null;index:idx_installment_due,priority:1"`
	SeqNo       int                 `gorm:"not null;uniqueIndex:uq_loan_installment_seq,priority:2"`
	DueDate     time.Time           `gorm:"type:date;not null;index:idx_installment_due,priority:2"`
	Amount      decimal.Decimal     `gorm:"type:numeric(18,2);not null"`
	Status      InstallmentStatus   `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	PaidDate    *time.Time          `gorm:"type:date"`
	PaidAmount  decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	SalaryMonth *time.Time          `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Installment) TableName() string {
	return "loan_installments"
}

// Outstanding reports whether payroll should still deduct the installment.
func (i Installment) Outstanding() bool {
	return i.Status == InstallmentUnpaid || i.Status == InstallmentPostponed
}

// PostponementRequest moves one installment to a later due date once fully
// approved.
type PostponementRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoanID         uuid.UUID `gorm:"type:uuid;not null;index"`
	InstallmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeNo     int64     `gorm:"not null;index"`
	DepartmentCode string    `gorm:"type:varchar(30);not null;default:''"`
	ProjectCode    string    `gorm:"type:varchar(30);not null;default:''"`
	NewDueDate     time.Time `gorm:"type:date;not null"`
	Reason         string    `gorm:"type:text;not null"`

	approval.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PostponementRequest) TableName() string {
	return "loan_postponement_requests"
}

func (p *PostponementRequest) RequestID() uuid.UUID           { return p.ID }
func (p *PostponementRequest) RequesterNo() int64             { return p.EmployeeNo }
func (p *PostponementRequest) ApprovalState() *approval.State { return &p.State }

func (p *PostponementRequest) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{DepartmentCode: p.DepartmentCode, ProjectCode: p.ProjectCode}
}
