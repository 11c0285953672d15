package approver

import (
	"context"
	"fmt"

	approvererrors "go-hrms/internal/approver/errors"
	"go-hrms/internal/sysconfig"
)

// Stored function names. They are parsed into a Function once, when the
// chain configuration is loaded.
const (
	NameDirectManager    = "GetDirectManager"
	NameProjectManager   = "GetProjectManager"
	NameHRManager        = "GetHRManager"
	NameFinanceManager   = "GetFinanceManager"
	NameGeneralManager   = "GetGeneralManager"
	NameSpecificEmployee = "SpecificEmployee"
)

// Function is one approver lookup rule. The set of implementations is closed
// to this package.
type Function interface {
	Name() string
	resolve(ctx context.Context, r *Resolver, subject Subject, roles sysconfig.Snapshot) (int64, error)
}

type DirectManager struct{}

type ProjectManager struct{}

// RoleHolder resolves to whoever holds a singleton role in the snapshot.
type RoleHolder struct {
	Role sysconfig.Role
}

type SpecificEmployee struct {
	EmployeeNo int64
}

func (DirectManager) Name() string  { return NameDirectManager }
func (ProjectManager) Name() string { return NameProjectManager }

func (f RoleHolder) Name() string {
	switch f.Role {
	case sysconfig.RoleHRManager:
		return NameHRManager
	case sysconfig.RoleFinanceManager:
		return NameFinanceManager
	default:
		return NameGeneralManager
	}
}

func (SpecificEmployee) Name() string { return NameSpecificEmployee }

// Parse turns a stored function name into a Function. specificEmployeeNo is
// only read for SpecificEmployee.
func Parse(name string, specificEmployeeNo *int64) (Function, error) {
	switch name {
	case NameDirectManager:
		return DirectManager{}, nil
	case NameProjectManager:
		return ProjectManager{}, nil
	case NameHRManager:
		return RoleHolder{Role: sysconfig.RoleHRManager}, nil
	case NameFinanceManager:
		return RoleHolder{Role: sysconfig.RoleFinanceManager}, nil
	case NameGeneralManager:
		return RoleHolder{Role: sysconfig.RoleGeneralManager}, nil
	case NameSpecificEmployee:
		if specificEmployeeNo == nil || *specificEmployeeNo <= 0 {
			return nil, approvererrors.ErrSpecificEmployeeRequired
		}
		return SpecificEmployee{EmployeeNo: *specificEmployeeNo}, nil
	default:
		return nil, fmt.Errorf("%w: %q", approvererrors.ErrUnknownFunction, name)
	}
}
