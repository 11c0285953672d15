package sysconfig

import "time"

// Role is a named singleton position held by exactly one employee.
type Role string

const (
	RoleHRManager      Role = "HR_MANAGER"
	RoleFinanceManager Role = "FINANCE_MANAGER"
	RoleGeneralManager Role = "GENERAL_MANAGER"
)

type RoleAssignment struct {
	Role       Role  `gorm:"type:varchar(40);primaryKey"`
	EmployeeNo int64 `gorm:"not null"`
	UpdatedAt  time.Time
}

func (RoleAssignment) TableName() string {
	return "system_role_assignments"
}

// Snapshot is an immutable view of the role assignments taken at the start
// of one operation and passed down explicitly.
type Snapshot struct {
	holders map[Role]int64
}

func NewSnapshot(holders map[Role]int64) Snapshot {
	cp := make(map[Role]int64, len(holders))
	for k, v := range holders {
		cp[k] = v
	}
	return Snapshot{holders: cp}
}

func (s Snapshot) Holder(role Role) (int64, bool) {
	no, ok := s.holders[role]
	return no, ok && no > 0
}
