package leave

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate string `json:"start_date" binding:"required,ymd"`
	EndDate   string `json:"end_date" binding:"required,ymd"`
	Reason    string `json:"reason"`
}

type SetEntitlementRequest struct {
	EmployeeNo   int64  `json:"employee_no" binding:"required,gt=0"`
	LeaveType    string `json:"leave_type" binding:"required,oneof=ANNUAL SICK"`
	Year         int    `json:"year" binding:"required,gte=2000"`
	EntitledDays int    `json:"entitled_days"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeNo      int64   `json:"employee_no"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       int64   `json:"created_by"`
	NextApproval    *int64  `json:"next_approval,omitempty"`
	NextAppLevel    *int    `json:"next_app_level,omitempty"`
	ApprovedBy      *int64  `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type BalanceResponse struct {
	LeaveType     string `json:"leave_type"`
	Year          int    `json:"year"`
	EntitledDays  int    `json:"entitled_days"`
	UsedDays      int    `json:"used_days"`
	AvailableDays int    `json:"available_days"`
}
