package adjustment

type CreateAdjustmentRequest struct {
	EmployeeNo  int64  `json:"employee_no" binding:"required,gt=0"`
	Kind        string `json:"kind" binding:"required,oneof=ALLOWANCE DEDUCTION"`
	TypeCode    int    `json:"type_code" binding:"required,gt=0"`
	Description string `json:"description"`
	Amount      string `json:"amount" binding:"required,amount"`
	Recurrence  string `json:"recurrence" binding:"required,oneof=FIXED VARIABLE"`
	StartDate   string `json:"start_date" binding:"required,ymd"`
	EndDate     string `json:"end_date" binding:"omitempty,ymd"`
}

type AdjustmentResponse struct {
	ID           string  `json:"id"`
	EmployeeNo   int64   `json:"employee_no"`
	Kind         string  `json:"kind"`
	TypeCode     int     `json:"type_code"`
	Description  string  `json:"description,omitempty"`
	Amount       string  `json:"amount"`
	Recurrence   string  `json:"recurrence"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	Status       string  `json:"status"`
	NextApproval *int64  `json:"next_approval,omitempty"`
	NextAppLevel *int    `json:"next_app_level,omitempty"`
}

func mapAdjustment(a MonthlyAdjustment) AdjustmentResponse {
	resp := AdjustmentResponse{
		ID:           a.ID.String(),
		EmployeeNo:   a.EmployeeNo,
		Kind:         string(a.Kind),
		TypeCode:     a.TypeCode,
		Description:  a.Description,
		Amount:       a.Amount.StringFixed(2),
		Recurrence:   string(a.Recurrence),
		StartDate:    a.StartDate.Format(dateLayout),
		Status:       string(a.Status),
		NextApproval: a.NextApproval,
		NextAppLevel: a.NextAppLevel,
	}
	if a.EndDate != nil {
		end := a.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}
