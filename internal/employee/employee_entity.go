package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category selects the salary breakdown percentages.
type Category string

const (
	CategorySaudi   Category = "S"
	CategoryForeign Category = "F"
)

type Employee struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNo      int64           `gorm:"not null;uniqueIndex:uq_employee_number"`
	FullName        string          `gorm:"type:varchar(150);not null"`
	DepartmentCode  *string         `gorm:"type:varchar(30);index"`
	ProjectCode     *string         `gorm:"type:varchar(30);index"`
	ManagerNo       *int64          `gorm:"index"`
	Category        Category        `gorm:"type:varchar(1);not null;default:'S'"`
	MonthlySalary   decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	HireDate        time.Time       `gorm:"type:date;not null"`
	TerminationDate *time.Time      `gorm:"type:date"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// EmployedWithin returns the part of [from, to] during which the employee
// was on the payroll, and false when there is none.
func (e Employee) EmployedWithin(from, to time.Time) (time.Time, time.Time, bool) {
	start, end := from, to
	if e.HireDate.After(start) {
		start = e.HireDate
	}
	if e.TerminationDate != nil && e.TerminationDate.Before(end) {
		end = *e.TerminationDate
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

type Department struct {
	Code      string `gorm:"type:varchar(30);primaryKey"`
	Name      string `gorm:"type:varchar(120);not null"`
	ManagerNo *int64
}

func (Department) TableName() string {
	return "departments"
}

type Project struct {
	Code      string `gorm:"type:varchar(30);primaryKey"`
	Name      string `gorm:"type:varchar(120);not null"`
	ManagerNo *int64
}

func (Project) TableName() string {
	return "projects"
}
