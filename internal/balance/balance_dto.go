package balance

type ProvisionBalanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000,max=2200"`
}

type BalanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`

	AnnualTotal     int `json:"annual_total"`
	AnnualUsed      int `json:"annual_used"`
	AnnualRemaining int `json:"annual_remaining"`

	SickTotal     int `json:"sick_total"`
	SickUsed      int `json:"sick_used"`
	SickRemaining int `json:"sick_remaining"`

	EmergencyTotal     int `json:"emergency_total"`
	EmergencyUsed      int `json:"emergency_used"`
	EmergencyRemaining int `json:"emergency_remaining"`
}
