package employee

import "time"

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	// EmployeeNo is assigned from the counter when zero.
	EmployeeNo     int64   `json:"employee_no" binding:"omitempty,gt=0"`
	FullName       string  `json:"full_name" binding:"required,max=150"`
	DepartmentCode *string `json:"department_code" binding:"omitempty,max=30"`
	ProjectCode    *string `json:"project_code" binding:"omitempty,max=30"`
	ManagerNo      *int64  `json:"manager_no" binding:"omitempty,gt=0"`
	Category       string  `json:"category" binding:"required,oneof=S F"`
	MonthlySalary  string  `json:"monthly_salary" binding:"required,amount"`
	HireDate       string  `json:"hire_date" binding:"required,ymd"`
}

type UpdateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required,max=150"`
	DepartmentCode *string `json:"department_code" binding:"omitempty,max=30"`
	ProjectCode    *string `json:"project_code" binding:"omitempty,max=30"`
	ManagerNo      *int64  `json:"manager_no" binding:"omitempty,gt=0"`
	Category       string  `json:"category" binding:"required,oneof=S F"`
	MonthlySalary  string  `json:"monthly_salary" binding:"required,amount"`
}

type TerminateEmployeeRequest struct {
	TerminationDate string `json:"termination_date" binding:"required,ymd"`
}

type UnitRequest struct {
	Code      string `json:"code" binding:"required,max=30"`
	Name      string `json:"name" binding:"required,max=120"`
	ManagerNo *int64 `json:"manager_no" binding:"omitempty,gt=0"`
}

type EmployeeResponse struct {
	EmployeeNo      int64   `json:"employee_no"`
	FullName        string  `json:"full_name"`
	DepartmentCode  *string `json:"department_code,omitempty"`
	ProjectCode     *string `json:"project_code,omitempty"`
	ManagerNo       *int64  `json:"manager_no,omitempty"`
	Category        string  `json:"category"`
	MonthlySalary   string  `json:"monthly_salary"`
	HireDate        string  `json:"hire_date"`
	TerminationDate *string `json:"termination_date,omitempty"`
}

type OptionResponse struct {
	EmployeeNo int64  `json:"employee_no"`
	FullName   string `json:"full_name"`
}

func mapEmployee(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeNo:     e.EmployeeNo,
		FullName:       e.FullName,
		DepartmentCode: e.DepartmentCode,
		ProjectCode:    e.ProjectCode,
		ManagerNo:      e.ManagerNo,
		Category:       string(e.Category),
		MonthlySalary:  e.MonthlySalary.StringFixed(2),
		HireDate:       e.HireDate.Format(dateLayout),
	}
	if e.TerminationDate != nil {
		v := e.TerminationDate.Format(dateLayout)
		resp.TerminationDate = &v
	}
	return resp
}

func parseDate(v string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, v)
	return t, err == nil
}
