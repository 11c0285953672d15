package attendance

type ClockRequest struct {
	Notes *string `json:"notes"`
}

type ManualAttendanceCreateRequest struct {
	AttendanceDate string `json:"attendance_date" binding:"required,ymd"`
	ClockIn        string `json:"clock_in" binding:"required"`
	ClockOut       string `json:"clock_out" binding:"required"`
	Reason         string `json:"reason" binding:"required"`
}

type RecordAbsenceRequest struct {
	EmployeeNo     int64   `json:"employee_no" binding:"required,gt=0"`
	AttendanceDate string  `json:"attendance_date" binding:"required,ymd"`
	Notes          *string `json:"notes"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeNo     int64   `json:"employee_no"`
	AttendanceDate string  `json:"attendance_date"`
	ClockIn        *string `json:"clock_in,omitempty"`
	ClockOut       *string `json:"clock_out,omitempty"`
	OvertimeHours  string  `json:"overtime_hours"`
	DelayedHours   string  `json:"delayed_hours"`
	EarlyOutHours  string  `json:"early_out_hours"`
	IsAbsent       bool    `json:"is_absent"`
	Source         string  `json:"source"`
	Notes          *string `json:"notes,omitempty"`
}

type ManualAttendanceResponse struct {
	ID             string `json:"id"`
	EmployeeNo     int64  `json:"employee_no"`
	AttendanceDate string `json:"attendance_date"`
	ClockIn        string `json:"clock_in"`
	ClockOut       string `json:"clock_out"`
	Status         string `json:"status"`
	NextApproval   *int64 `json:"next_approval,omitempty"`
	NextAppLevel   *int   `json:"next_app_level,omitempty"`
}

type SummaryResponse struct {
	EmployeeNo    int64  `json:"employee_no"`
	From          string `json:"from"`
	To            string `json:"to"`
	OvertimeHours string `json:"overtime_hours"`
	DelayedHours  string `json:"delayed_hours"`
	EarlyOutHours string `json:"early_out_hours"`
	AbsentDays    string `json:"absent_days"`
}
