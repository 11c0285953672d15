package approval

import "time"

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type StateResponse struct {
	RequestType     string  `json:"request_type"`
	RequestID       string  `json:"request_id"`
	Status          string  `json:"status"`
	NextApproval    *int64  `json:"next_approval,omitempty"`
	NextAppLevel    *int    `json:"next_app_level,omitempty"`
	ApprovedBy      *int64  `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      *int64  `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	Version         int     `json:"version"`
}

type PendingResponse struct {
	RequestType string `json:"request_type"`
	RequestID   string `json:"request_id"`
	RequesterNo int64  `json:"requester_no"`
	Level       int    `json:"level"`
	Department  string `json:"department_code,omitempty"`
	Project     string `json:"project_code,omitempty"`
}

func mapState(t RequestType, id string, st State) StateResponse {
	resp := StateResponse{
		RequestType:     string(t),
		RequestID:       id,
		Status:          string(st.Status),
		NextApproval:    st.NextApproval,
		NextAppLevel:    st.NextAppLevel,
		ApprovedBy:      st.ApprovedBy,
		RejectedBy:      st.RejectedBy,
		RejectionReason: st.RejectionReason,
		Version:         st.Version,
	}
	resp.ApprovedAt = formatTime(st.ApprovedAt)
	resp.RejectedAt = formatTime(st.RejectedAt)
	return resp
}

func mapPending(t RequestType, rows []Request) []PendingResponse {
	out := make([]PendingResponse, 0, len(rows))
	for _, r := range rows {
		scope := r.ApprovalScope()
		out = append(out, PendingResponse{
			RequestType: string(t),
			RequestID:   r.RequestID().String(),
			RequesterNo: r.RequesterNo(),
			Level:       r.ApprovalState().Level(),
			Department:  scope.DepartmentCode,
			Project:     scope.ProjectCode,
		})
	}
	return out
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
