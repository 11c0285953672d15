package project

type CreatePaymentRequest struct {
	ProjectCode string `json:"project_code" binding:"required"`
	Payee       string `json:"payee" binding:"required"`
	Amount      string `json:"amount" binding:"required,amount"`
	Description string `json:"description"`
}

type CreateTransferRequest struct {
	EmployeeNo    int64  `json:"employee_no" binding:"required,gt=0"`
	ToProject     string `json:"to_project" binding:"required"`
	EffectiveDate string `json:"effective_date" binding:"required,ymd"`
	Reason        string `json:"reason"`
}

type LaborLine struct {
	Trade    string `json:"trade" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateLaborRequest struct {
	ProjectCode string      `json:"project_code" binding:"required"`
	StartDate   string      `json:"start_date" binding:"required,ymd"`
	Months      int         `json:"months" binding:"required,gt=0"`
	Remarks     string      `json:"remarks"`
	Lines       []LaborLine `json:"lines" binding:"required,dive"`
}

// RequestResponse is shared by the three project request kinds.
type RequestResponse struct {
	ID           string         `json:"id"`
	Kind         string         `json:"kind"`
	ProjectCode  string         `json:"project_code"`
	RequestedBy  int64          `json:"requested_by"`
	Status       string         `json:"status"`
	NextApproval *int64         `json:"next_approval,omitempty"`
	NextAppLevel *int           `json:"next_app_level,omitempty"`
	Details      map[string]any `json:"details"`
}
