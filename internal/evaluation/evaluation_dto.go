package evaluation

type CreateEvaluationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Score      int    `json:"score" binding:"min=0,max=100"`
	Notes      string `json:"notes"`
}

type UpdateEvaluationRequest struct {
	Score int    `json:"score" binding:"min=0,max=100"`
	Notes string `json:"notes"`
}

type EvaluationResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Score        int    `json:"score"`
	Grade        string `json:"grade"`
	Notes        string `json:"notes,omitempty"`
	EvaluatedBy  string `json:"evaluated_by"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
