package app

import (
	"gorm.io/gorm"

	"go-hrms/internal/adjustment"
	"go-hrms/internal/approvalchain"
	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/employee"
	"go-hrms/internal/employeesalary"
	"go-hrms/internal/leave"
	"go-hrms/internal/loan"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/payroll"
	"go-hrms/internal/project"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/sysconfig"
)

// Migrate creates or extends every table the services use. Partial indexes
// declared in struct tags (is_latest) are created with their WHERE clause.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&employee.Department{},
		&employee.Project{},
		&auth.Credential{},
		&sysconfig.RoleAssignment{},
		&employeesalary.CategoryPercentage{},
		&employeesalary.ContractOverride{},
		&approvalchain.ChainLevel{},
		&counter.Counter{},
		&adjustment.MonthlyAdjustment{},
		&attendance.Attendance{},
		&attendance.ManualAttendanceRequest{},
		&leave.EmployeeLeave{},
		&leave.LeaveBalance{},
		&loan.Loan{},
		&loan.Installment{},
		&loan.PostponementRequest{},
		&project.ProjectPaymentRequest{},
		&project.ProjectTransferRequest{},
		&project.ProjectLaborRequestHeader{},
		&project.LaborRequestLine{},
		&payroll.SalaryHeader{},
		&payroll.SalaryDetail{},
		&kafka.OutboxEvent{},
	)
}
