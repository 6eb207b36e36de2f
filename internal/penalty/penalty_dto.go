package penalty

type CreatePenaltyRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Kind       string  `json:"kind" binding:"required,oneof=WARNING DEDUCTION SUSPENSION"`
	Amount     float64 `json:"amount"`
	Reason     string  `json:"reason" binding:"required"`
}

type PenaltyResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Kind         string  `json:"kind"`
	Amount       float64 `json:"amount"`
	Reason       string  `json:"reason"`
	IssuedBy     string  `json:"issued_by"`
	CreatedAt    string  `json:"created_at,omitempty"`
}
