package response_models

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type MeResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	CompanyID      *string `json:"company_id"`
	CompanyName    *string `json:"company_name"`
	DepartmentID   *string `json:"department_id"`
	DepartmentName *string `json:"department_name"`
}

type RegisterResponse struct {
	TokenPairResponse
	User MeResponse `json:"user"`
}

type CompanyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Name           string  `json:"name"`
	DepartmentName *string `json:"department_name"`
}
