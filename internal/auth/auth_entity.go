package auth

import "time"

// Credential is the login secret of one employee. Employees without a row
// cannot sign in.
type Credential struct {
	EmployeeNo   int64  `gorm:"primaryKey;autoIncrement:false"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsActive     bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Credential) TableName() string {
	return "credentials"
}
