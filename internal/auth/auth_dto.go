package auth

type LoginRequest struct {
	EmployeeNo int64  `json:"employee_no" binding:"required,gt=0"`
	Password   string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SetPasswordRequest struct {
	EmployeeNo int64  `json:"employee_no" binding:"required,gt=0"`
	Password   string `json:"password" binding:"required,min=8"`
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	EmployeeNo     int64   `json:"employee_no"`
	FullName       string  `json:"full_name"`
	DepartmentCode *string `json:"department_code,omitempty"`
	ProjectCode    *string `json:"project_code,omitempty"`
}
