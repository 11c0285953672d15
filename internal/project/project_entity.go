package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-hrms/internal/approval"
	"go-hrms/internal/approvalchain"
)

// ProjectPaymentRequest asks for a payment charged to a project.
type ProjectPaymentRequest struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectCode string          `gorm:"type:varchar(30);not null;index"`
	RequestedBy int64           `gorm:"not null"`
	Payee       string          `gorm:"type:varchar(150);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Description string          `gorm:"type:text"`

	approval.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProjectPaymentRequest) TableName() string { return "project_payment_requests" }

func (p *ProjectPaymentRequest) RequestID() uuid.UUID           { return p.ID }
func (p *ProjectPaymentRequest) RequesterNo() int64             { return p.RequestedBy }
func (p *ProjectPaymentRequest) ApprovalState() *approval.State { return &p.State }
func (p *ProjectPaymentRequest) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{ProjectCode: p.ProjectCode}
}

// ProjectTransferRequest moves an employee between projects. The chain of
// the source project decides.
type ProjectTransferRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo    int64     `gorm:"not null;index"`
	FromProject   string    `gorm:"type:varchar(30);not null;index"`
	ToProject     string    `gorm:"type:varchar(30);not null"`
	EffectiveDate time.Time `gorm:"type:date;not null"`
	RequestedBy   int64     `gorm:"not null"`
	Reason        string    `gorm:"type:text"`

	approval.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProjectTransferRequest) TableName() string { return "project_transfer_requests" }

func (p *ProjectTransferRequest) RequestID() uuid.UUID           { return p.ID }
func (p *ProjectTransferRequest) RequesterNo() int64             { return p.RequestedBy }
func (p *ProjectTransferRequest) ApprovalState() *approval.State { return &p.State }
func (p *ProjectTransferRequest) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{ProjectCode: p.FromProject}
}

// ProjectLaborRequestHeader asks for additional manpower on a project.
type ProjectLaborRequestHeader struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectCode string             `gorm:"type:varchar(30);not null;index"`
	RequestedBy int64              `gorm:"not null"`
	StartDate   time.Time          `gorm:"type:date;not null"`
	Months      int                `gorm:"not null"`
	Remarks     string             `gorm:"type:text"`
	Lines       []LaborRequestLine `gorm:"foreignKey:HeaderID;constraint:OnDelete:CASCADE"`

	approval.State `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProjectLaborRequestHeader) TableName() string { return "project_labor_request_headers" }

func (p *ProjectLaborRequestHeader) RequestID() uuid.UUID           { return p.ID }
func (p *ProjectLaborRequestHeader) RequesterNo() int64             { return p.RequestedBy }
func (p *ProjectLaborRequestHeader) ApprovalState() *approval.State { return &p.State }
func (p *ProjectLaborRequestHeader) ApprovalScope() approvalchain.Scope {
	return approvalchain.Scope{ProjectCode: p.ProjectCode}
}

// Headcount is the total number of workers asked for.
func (p ProjectLaborRequestHeader) Headcount() int {
	n := 0
	for _, l := range p.Lines {
		n += l.Quantity
	}
	return n
}

type LaborRequestLine struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HeaderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Trade    string    `gorm:"type:varchar(80);not null"`
	Quantity int       `gorm:"not null"`
}

func (LaborRequestLine) TableName() string { return "project_labor_request_lines" }
