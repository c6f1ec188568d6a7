package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/models/request_models"
	"pulse/internal/services"
	"pulse/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{accountService: accountService}
}

// Register godoc
// @Summary Register a new account
// @Description Create an employee account with a reference photo for face login
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param name formData string false "Display name"
// @Param company_id formData string false "Company ID"
// @Param department_id formData string false "Department ID"
// @Param photo formData file true "Reference face photo"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	photo, photoName, err := readFormFile(c, "photo")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Reference photo is required")
		return
	}

	resp, err := a.accountService.Register(c.Request.Context(), req, photo, photoName)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Account registered successfully")
}

// Login godoc
// @Summary Login with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Logged in successfully")
}

// Refresh godoc
// @Summary Rotate the token pair
// @Description Exchange a refresh token for a new access and refresh token; the presented refresh token is invalidated
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RefreshRequest true "Refresh token"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/refresh [post]
func (a *AccountController) Refresh(c *gin.Context) {
	var req request_models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pair, err := a.accountService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pair, "Token refreshed successfully")
}

// Me godoc
// @Summary Current account profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /me [get]
func (a *AccountController) Me(c *gin.Context) {
	me, err := a.accountService.Me(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, me, "Profile fetched successfully")
}

// ListEmployees godoc
// @Summary List employees of the caller's company
// @Tags HR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /hr/employees [get]
func (a *AccountController) ListEmployees(c *gin.Context) {
	employees, err := a.accountService.ListEmployees(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, employees, "Employees fetched successfully")
}

// ListCompanies godoc
// @Summary List companies
// @Description Public catalog used to pick a company at registration
// @Tags References
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /companies [get]
func (a *AccountController) ListCompanies(c *gin.Context) {
	companies, err := a.accountService.ListCompanies(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, companies, "Companies fetched successfully")
}

// ListDepartments godoc
// @Summary List departments
// @Description Public catalog used to pick a department at registration, optionally narrowed to one company
// @Tags References
// @Produce json
// @Param company_id query string false "Company ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /departments [get]
func (a *AccountController) ListDepartments(c *gin.Context) {
	departments, err := a.accountService.ListDepartments(c.Request.Context(), c.Query("company_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, departments, "Departments fetched successfully")
}
