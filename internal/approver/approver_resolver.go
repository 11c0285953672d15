package approver

import (
	"context"
	"errors"
	"fmt"

	approvererrors "go-hrms/internal/approver/errors"
	"go-hrms/internal/employee"
	"go-hrms/internal/sysconfig"
)

// Subject is what an approver is resolved for: the requesting employee and
// the optional scope of the request.
type Subject struct {
	EmployeeNo     int64
	DepartmentCode string
	ProjectCode    string
}

// ResolutionError reports that a function yielded no employee. It matches
// approvererrors.ErrUnresolved with errors.Is.
type ResolutionError struct {
	Function   string
	EmployeeNo int64
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s for employee %d: %v", e.Function, e.EmployeeNo, e.Err)
}

func (e *ResolutionError) Unwrap() []error {
	return []error{approvererrors.ErrUnresolved, e.Err}
}

var (
	errNoDepartment = errors.New("employee has no department")
	errNoProject    = errors.New("employee has no project")
	errRoleVacant   = errors.New("role is not assigned")
)

type Resolver struct {
	directory employee.Directory
}

func NewResolver(directory employee.Directory) *Resolver {
	return &Resolver{directory: directory}
}

// Resolve maps fn to a concrete employee number. Any failure comes back as a
// *ResolutionError; callers must not skip the level.
func (r *Resolver) Resolve(ctx context.Context, fn Function, subject Subject, roles sysconfig.Snapshot) (int64, error) {
	no, err := fn.resolve(ctx, r, subject, roles)
	if err != nil {
		return 0, &ResolutionError{Function: fn.Name(), EmployeeNo: subject.EmployeeNo, Err: err}
	}
	return no, nil
}

func (DirectManager) resolve(ctx context.Context, r *Resolver, s Subject, _ sysconfig.Snapshot) (int64, error) {
	emp, err := r.directory.FindByNo(ctx, s.EmployeeNo)
	if err != nil {
		return 0, err
	}
	if emp.ManagerNo != nil && *emp.ManagerNo > 0 {
		return *emp.ManagerNo, nil
	}

	department := s.DepartmentCode
	if department == "" && emp.DepartmentCode != nil {
		department = *emp.DepartmentCode
	}
	if department == "" {
		return 0, errNoDepartment
	}
	return r.directory.DepartmentManager(ctx, department)
}

func (ProjectManager) resolve(ctx context.Context, r *Resolver, s Subject, _ sysconfig.Snapshot) (int64, error) {
	project := s.ProjectCode
	if project == "" {
		emp, err := r.directory.FindByNo(ctx, s.EmployeeNo)
		if err != nil {
			return 0, err
		}
		if emp.ProjectCode != nil {
			project = *emp.ProjectCode
		}
	}
	if project == "" {
		return 0, errNoProject
	}
	return r.directory.ProjectManager(ctx, project)
}

func (f RoleHolder) resolve(_ context.Context, _ *Resolver, _ Subject, roles sysconfig.Snapshot) (int64, error) {
	no, ok := roles.Holder(f.Role)
	if !ok {
		return 0, fmt.Errorf("%w: %s", errRoleVacant, f.Role)
	}
	return no, nil
}

func (f SpecificEmployee) resolve(context.Context, *Resolver, Subject, sysconfig.Snapshot) (int64, error) {
	return f.EmployeeNo, nil
}
