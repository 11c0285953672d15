package approvalchain

type LevelRequest struct {
	LevelNo            int    `json:"level_no" binding:"required,gt=0"`
	DepartmentCode     string `json:"department_code" binding:"max=30"`
	ProjectCode        string `json:"project_code" binding:"max=30"`
	FunctionName       string `json:"function_name" binding:"required"`
	SpecificEmployeeNo *int64 `json:"specific_employee_no"`
	CloseLevel         bool   `json:"close_level"`
}

type ReplaceChainRequest struct {
	Levels []LevelRequest `json:"levels" binding:"required,dive"`
}

type LevelResponse struct {
	ID                 string `json:"id"`
	LevelNo            int    `json:"level_no"`
	DepartmentCode     string `json:"department_code,omitempty"`
	ProjectCode        string `json:"project_code,omitempty"`
	FunctionName       string `json:"function_name"`
	SpecificEmployeeNo *int64 `json:"specific_employee_no,omitempty"`
	CloseLevel         bool   `json:"close_level"`
}

func (r ReplaceChainRequest) rows() []ChainLevel {
	out := make([]ChainLevel, len(r.Levels))
	for i, l := range r.Levels {
		out[i] = ChainLevel{
			LevelNo:            l.LevelNo,
			DepartmentCode:     l.DepartmentCode,
			ProjectCode:        l.ProjectCode,
			FunctionName:       l.FunctionName,
			SpecificEmployeeNo: l.SpecificEmployeeNo,
			CloseLevel:         l.CloseLevel,
		}
	}
	return out
}

func mapLevels(rows []ChainLevel) []LevelResponse {
	out := make([]LevelResponse, len(rows))
	for i, row := range rows {
		out[i] = LevelResponse{
			ID:                 row.ID.String(),
			LevelNo:            row.LevelNo,
			DepartmentCode:     row.DepartmentCode,
			ProjectCode:        row.ProjectCode,
			FunctionName:       row.FunctionName,
			SpecificEmployeeNo: row.SpecificEmployeeNo,
			CloseLevel:         row.CloseLevel,
		}
	}
	return out
}
