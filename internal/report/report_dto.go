package report

type LeaveSummary struct {
	TotalRequests      int            `json:"total_requests"`
	ByStatus           map[string]int `json:"by_status"`
	ApprovedDaysByType map[string]int `json:"approved_days_by_type"`
	TotalApprovedDays  int            `json:"total_approved_days"`
}

type BalanceSnapshot struct {
	AnnualTotal        int `json:"annual_total"`
	AnnualUsed         int `json:"annual_used"`
	AnnualRemaining    int `json:"annual_remaining"`
	SickTotal          int `json:"sick_total"`
	SickUsed           int `json:"sick_used"`
	SickRemaining      int `json:"sick_remaining"`
	EmergencyTotal     int `json:"emergency_total"`
	EmergencyUsed      int `json:"emergency_used"`
	EmergencyRemaining int `json:"emergency_remaining"`
}

type EvaluationSummary struct {
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
	LatestScore  int     `json:"latest_score,omitempty"`
	LatestGrade  string  `json:"latest_grade,omitempty"`
	LatestYear   int     `json:"latest_year,omitempty"`
	LatestMonth  int     `json:"latest_month,omitempty"`
}

type PenaltySummary struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

type EmployeeReport struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name,omitempty"`
	Year         int               `json:"year"`
	Leave        LeaveSummary      `json:"leave"`
	Balance      BalanceSnapshot   `json:"balance"`
	Evaluation   EvaluationSummary `json:"evaluation"`
	Penalty      PenaltySummary    `json:"penalty"`
}

type SystemReport struct {
	Year              int            `json:"year"`
	TotalRequests     int            `json:"total_requests"`
	ByStatus          map[string]int `json:"by_status"`
	ApprovalRate      float64        `json:"approval_rate"`
	TotalApprovedDays int            `json:"total_approved_days"`
}
