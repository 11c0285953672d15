package loan

type CreateLoanRequest struct {
	Amount               string `json:"amount" binding:"required,amount"`
	NoOfInstallments     int    `json:"no_of_installments" binding:"required,gt=0,lte=120"`
	FirstInstallmentDate string `json:"first_installment_date" binding:"required,ymd"`
	Reason               string `json:"reason"`
}

type CreatePostponementRequest struct {
	InstallmentID string `json:"installment_id" binding:"required,uuid"`
	NewDueDate    string `json:"new_due_date" binding:"required,ymd"`
	Reason        string `json:"reason" binding:"required"`
}

type DeductPaymentRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

type InstallmentResponse struct {
	ID          string  `json:"id"`
	SeqNo       int     `json:"seq_no"`
	DueDate     string  `json:"due_date"`
	Amount      string  `json:"amount"`
	Status      string  `json:"status"`
	PaidDate    *string `json:"paid_date,omitempty"`
	PaidAmount  *string `json:"paid_amount,omitempty"`
	SalaryMonth *string `json:"salary_month,omitempty"`
}

type LoanResponse struct {
	ID                   string                `json:"id"`
	EmployeeNo           int64                 `json:"employee_no"`
	Amount               string                `json:"amount"`
	NoOfInstallments     int                   `json:"no_of_installments"`
	FirstInstallmentDate string                `json:"first_installment_date"`
	RemainingBalance     string                `json:"remaining_balance"`
	IsActive             bool                  `json:"is_active"`
	Status               string                `json:"status"`
	NextApproval         *int64                `json:"next_approval,omitempty"`
	NextAppLevel         *int                  `json:"next_app_level,omitempty"`
	Installments         []InstallmentResponse `json:"installments,omitempty"`
}

type PostponementResponse struct {
	ID            string `json:"id"`
	LoanID        string `json:"loan_id"`
	InstallmentID string `json:"installment_id"`
	NewDueDate    string `json:"new_due_date"`
	Status        string `json:"status"`
	NextApproval  *int64 `json:"next_approval,omitempty"`
}
