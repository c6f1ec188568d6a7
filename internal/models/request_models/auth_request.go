package request_models

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RegisterRequest is bound from multipart form fields; the reference photo
// itself travels as the "photo" file part.
type RegisterRequest struct {
	Username     string `form:"username" binding:"required"`
	Name         string `form:"name"`
	Password     string `form:"password" binding:"required,min=6"`
	CompanyID    string `form:"company_id"`
	DepartmentID string `form:"department_id"`
}
