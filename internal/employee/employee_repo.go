package employee

import (
	"context"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/txmanager"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Directory is the read side of the employee master data used by the
// approval and payroll core.
//
//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Directory interface {
	FindByNo(ctx context.Context, employeeNo int64) (*Employee, error)
	DepartmentManager(ctx context.Context, departmentCode string) (int64, error)
	ProjectManager(ctx context.Context, projectCode string) (int64, error)
}

// Repository adds the HR maintenance writes to Directory.
type Repository interface {
	Directory
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	SaveDepartment(ctx context.Context, d *Department) error
	SaveProject(ctx context.Context, p *Project) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByNo(ctx context.Context, employeeNo int64) (*Employee, error) {
	var e Employee
	err := txmanager.GetDB(ctx, r.db).
		Where("employee_no = ?", employeeNo).
		First(&e).Error
	if err != nil {
		return nil, mapRepositoryError(err, employeeerrors.ErrEmployeeNotFound)
	}
	return &e, nil
}

func (r *repository) DepartmentManager(ctx context.Context, departmentCode string) (int64, error) {
	var d Department
	err := txmanager.GetDB(ctx, r.db).
		Where("code = ?", departmentCode).
		First(&d).Error
	if err != nil {
		return 0, mapRepositoryError(err, employeeerrors.ErrDepartmentNotFound)
	}
	if d.ManagerNo == nil {
		return 0, employeeerrors.ErrManagerNotAssigned
	}
	return *d.ManagerNo, nil
}

func (r *repository) ProjectManager(ctx context.Context, projectCode string) (int64, error) {
	var p Project
	err := txmanager.GetDB(ctx, r.db).
		Where("code = ?", projectCode).
		First(&p).Error
	if err != nil {
		return 0, mapRepositoryError(err, employeeerrors.ErrProjectNotFound)
	}
	if p.ManagerNo == nil {
		return 0, employeeerrors.ErrManagerNotAssigned
	}
	return *p.ManagerNo, nil
}

func (r *repository) List(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := txmanager.GetDB(ctx, r.db).Order("employee_no ASC").Find(&out).Error
	return out, err
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return txmanager.GetDB(ctx, r.db).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	res := txmanager.GetDB(ctx, r.db).
		Model(&Employee{}).
		Where("employee_no = ?", e.EmployeeNo).
		Updates(map[string]any{
			"full_name":        e.FullName,
			"department_code":  e.DepartmentCode,
			"project_code":     e.ProjectCode,
			"manager_no":       e.ManagerNo,
			"category":         e.Category,
			"monthly_salary":   e.MonthlySalary,
			"termination_date": e.TerminationDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}

// SaveDepartment inserts the department or replaces its name and manager.
func (r *repository) SaveDepartment(ctx context.Context, d *Department) error {
	return txmanager.GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "manager_no"}),
		}).
		Create(d).Error
}

func (r *repository) SaveProject(ctx context.Context, p *Project) error {
	return txmanager.GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "manager_no"}),
		}).
		Create(p).Error
}
