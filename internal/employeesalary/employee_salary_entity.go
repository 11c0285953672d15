package employeesalary

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryPercentage is one row of the salary breakdown table: the share of
// the gross salary paid as TypeCode for every employee of Category.
type CategoryPercentage struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category   employee.Category `gorm:"type:varchar(1);not null;uniqueIndex:uq_breakdown_category_type"`
	TypeCode   int               `gorm:"not null;uniqueIndex:uq_breakdown_category_type"`
	Name       string            `gorm:"type:varchar(80);not null"`
	Percentage decimal.Decimal   `gorm:"type:numeric(7,6);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CategoryPercentage) TableName() string {
	return "salary_breakdown_percentages"
}

// ContractOverride replaces the category percentage of one type code for a
// single employee, as agreed in the employee's contract.
type ContractOverride struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo int64           `gorm:"not null;uniqueIndex:uq_contract_override_type"`
	TypeCode   int             `gorm:"not null;uniqueIndex:uq_contract_override_type"`
	Name       string          `gorm:"type:varchar(80);not null"`
	Percentage decimal.Decimal `gorm:"type:numeric(7,6);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ContractOverride) TableName() string {
	return "employee_contract_allowances"
}

type Component struct {
	TypeCode   int             `json:"type_code"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}
