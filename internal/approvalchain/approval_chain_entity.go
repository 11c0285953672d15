package approvalchain

import (
	"time"

	"github.com/google/uuid"

	"go-hrms/internal/approver"
)

// ChainLevel is one configured approval step. An empty department or
// project code means the entry applies to every department or project.
type ChainLevel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestType        string    `gorm:"type:varchar(40);not null;uniqueIndex:uq_chain_level,priority:1"`
	LevelNo            int       `gorm:"not null;uniqueIndex:uq_chain_level,priority:2"`
	DepartmentCode     string    `gorm:"type:varchar(30);not null;default:'';uniqueIndex:uq_chain_level,priority:3"`
	ProjectCode        string    `gorm:"type:varchar(30);not null;default:'';uniqueIndex:uq_chain_level,priority:4"`
	FunctionName       string    `gorm:"type:varchar(40);not null"`
	SpecificEmployeeNo *int64
	CloseLevel         bool `gorm:"not null;default:false"`
	IsActive           bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (ChainLevel) TableName() string {
	return "approval_chain_levels"
}

// Scope narrows a request to a department and/or project.
type Scope struct {
	DepartmentCode string
	ProjectCode    string
}

// Level is a ChainLevel with its resolver function already parsed.
type Level struct {
	RequestType    string
	No             int
	DepartmentCode string
	ProjectCode    string
	Function       approver.Function
	Close          bool
}

func (l Level) matches(s Scope) bool {
	if l.DepartmentCode != "" && l.DepartmentCode != s.DepartmentCode {
		return false
	}
	if l.ProjectCode != "" && l.ProjectCode != s.ProjectCode {
		return false
	}
	return true
}

// specificity ranks a project match above a department match above global.
func (l Level) specificity() int {
	n := 0
	if l.ProjectCode != "" {
		n += 2
	}
	if l.DepartmentCode != "" {
		n++
	}
	return n
}
