package employee

type EmployeeResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	HireDate   string `json:"hire_date"`
}
