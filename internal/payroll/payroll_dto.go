package payroll

import (
	"time"
)

type CalculatePayrollRequest struct {
	EmployeeNo  int64  `json:"employee_no" binding:"required,gt=0"`
	SalaryMonth string `json:"salary_month" binding:"required,ym"`
}

type RecalculatePayrollRequest struct {
	EmployeeNo  int64  `json:"employee_no" binding:"required,gt=0"`
	SalaryMonth string `json:"salary_month" binding:"required,ym"`
	Reason      string `json:"reason" binding:"required"`
}

type DetailResponse struct {
	LineNo      int     `json:"line_no"`
	Kind        string  `json:"kind"`
	Source      string  `json:"source"`
	TypeCode    int     `json:"type_code"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	SourceID    *string `json:"source_id,omitempty"`
}

type PayrollResponse struct {
	ID                  string           `json:"id"`
	EmployeeNo          int64            `json:"employee_no"`
	SalaryMonth         string           `json:"salary_month"`
	SalaryVersion       int              `json:"salary_version"`
	IsLatest            bool             `json:"is_latest"`
	SalaryType          string           `json:"salary_type"`
	GrossSalary         string           `json:"gross_salary"`
	TotalAllowances     string           `json:"total_allowances"`
	TotalOvertime       string           `json:"total_overtime"`
	TotalDeductions     string           `json:"total_deductions"`
	TotalAbsence        string           `json:"total_absence"`
	TotalLoans          string           `json:"total_loans"`
	NetSalary           string           `json:"net_salary"`
	Status              string           `json:"status"`
	NextApproval        *int64           `json:"next_approval,omitempty"`
	NextAppLevel        *int             `json:"next_app_level,omitempty"`
	RecalculationReason *string          `json:"recalculation_reason,omitempty"`
	ApprovedAt          *string          `json:"approved_at,omitempty"`
	Details             []DetailResponse `json:"details,omitempty"`
}

func mapHeader(h SalaryHeader) PayrollResponse {
	resp := PayrollResponse{
		ID:                  h.ID.String(),
		EmployeeNo:          h.EmployeeNo,
		SalaryMonth:         h.SalaryMonth.Format(monthLayout),
		SalaryVersion:       h.SalaryVersion,
		IsLatest:            h.IsLatest,
		SalaryType:          string(h.SalaryType),
		GrossSalary:         h.GrossSalary.StringFixed(lineAmountPlaces),
		TotalAllowances:     h.TotalAllowances.StringFixed(lineAmountPlaces),
		TotalOvertime:       h.TotalOvertime.StringFixed(lineAmountPlaces),
		TotalDeductions:     h.TotalDeductions.StringFixed(lineAmountPlaces),
		TotalAbsence:        h.TotalAbsence.StringFixed(lineAmountPlaces),
		TotalLoans:          h.TotalLoans.StringFixed(lineAmountPlaces),
		NetSalary:           h.NetSalary.StringFixed(lineAmountPlaces),
		Status:              string(h.Status),
		NextApproval:        h.NextApproval,
		NextAppLevel:        h.NextAppLevel,
		RecalculationReason: h.RecalculationReason,
	}
	if h.ApprovedAt != nil {
		v := h.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}

	for _, d := range h.Details {
		line := DetailResponse{
			LineNo:      d.LineNo,
			Kind:        string(d.Kind),
			Source:      string(d.Source),
			TypeCode:    d.TypeCode,
			Description: d.Description,
			Amount:      d.Amount.StringFixed(lineAmountPlaces),
		}
		if d.SourceID != nil {
			v := d.SourceID.String()
			line.SourceID = &v
		}
		resp.Details = append(resp.Details, line)
	}
	return resp
}

func mapHeaders(rows []SalaryHeader) []PayrollResponse {
	resp := make([]PayrollResponse, len(rows))
	for i, h := range rows {
		resp[i] = mapHeader(h)
	}
	return resp
}
