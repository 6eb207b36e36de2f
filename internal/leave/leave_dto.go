package leave

type CreateLeaveRequest struct {
	EmployeeID           string  `json:"employee_id" binding:"required,uuid"`
	LeaveType            string  `json:"leave_type" binding:"required,oneof=ANNUAL SICK EMERGENCY UNPAID OTHER"`
	StartDate            string  `json:"start_date" binding:"required"`
	EndDate              string  `json:"end_date" binding:"required"`
	Reason               string  `json:"reason" binding:"required"`
	SubstituteEmployeeID *string `json:"substitute_employee_id" binding:"omitempty,uuid"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name,omitempty"`
	LeaveType            string  `json:"leave_type"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	DaysCount            int     `json:"days_count"`
	Reason               string  `json:"reason"`
	SubstituteEmployeeID *string `json:"substitute_employee_id,omitempty"`
	Status               string  `json:"status"`
	RejectionReason      *string `json:"rejection_reason,omitempty"`
	ReviewedBy           *string `json:"reviewed_by,omitempty"`
	ReviewedByName       *string `json:"reviewed_by_name,omitempty"`
	ReviewedAt           *string `json:"reviewed_at,omitempty"`
	CreatedBy            string  `json:"created_by"`
	CreatedAt            string  `json:"created_at,omitempty"`
}
