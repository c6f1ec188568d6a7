package controllers

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"pulse/internal/models/request_models"
	"pulse/internal/services"
	"pulse/pkg/utils"
)

type RequestController struct {
	requestService services.RequestServiceInterface
}

func NewRequestController(requestService services.RequestServiceInterface) *RequestController {
	return &RequestController{requestService: requestService}
}

// ListHRs godoc
// @Summary List HR contacts of the caller's company
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /employee/hrs [get]
func (r *RequestController) ListHRs(c *gin.Context) {
	hrs, err := r.requestService.ListHRs(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, hrs, "HR contacts fetched successfully")
}

// ListTypes godoc
// @Summary List request types
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /employee/request-types [get]
func (r *RequestController) ListTypes(c *gin.Context) {
	types, err := r.requestService.ListTypes(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, types, "Request types fetched successfully")
}

// CreateRequest godoc
// @Summary Open a request to an HR contact
// @Description Create a ticket with its initial message
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateRequestRequest true "Request payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /employee/requests [post]
func (r *RequestController) CreateRequest(c *gin.Context) {
	var req request_models.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	detail, err := r.requestService.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, detail, "Request created successfully")
}

// ListMine godoc
// @Summary List the caller's requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /employee/requests [get]
func (r *RequestController) ListMine(c *gin.Context) {
	requests, err := r.requestService.ListForEmployee(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, requests, "Requests fetched successfully")
}

// ListAssigned godoc
// @Summary List requests assigned to the caller
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /hr/requests [get]
func (r *RequestController) ListAssigned(c *gin.Context) {
	requests, err := r.requestService.ListForHR(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, requests, "Requests fetched successfully")
}

// Detail godoc
// @Summary Request detail with message history
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /employee/requests/{id} [get]
func (r *RequestController) Detail(c *gin.Context) {
	detail, err := r.requestService.Detail(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Request fetched successfully")
}

// SendMessage godoc
// @Summary Add a message to a request
// @Description Append a text message and/or a file attachment; closed requests reject new messages
// @Tags Requests
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param text formData string false "Message text"
// @Param file formData file false "Attachment"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /employee/requests/{id}/messages [post]
func (r *RequestController) SendMessage(c *gin.Context) {
	var req request_models.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var attachment []byte
	var attachmentExt string
	data, filename, err := readFormFile(c, "file")
	switch {
	case err == nil:
		attachment = data
		attachmentExt = filepath.Ext(filename)
	case errors.Is(err, http.ErrMissingFile):
		// text-only message
	default:
		utils.RespondError(c, http.StatusBadRequest, "Invalid attachment")
		return
	}

	detail, err := r.requestService.SendMessage(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Text, attachment, attachmentExt)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, detail, "Message sent successfully")
}

// UpdateStatus godoc
// @Summary Move a request into work
// @Description The only accepted status value is IN_PROGRESS; closing goes through the close endpoint
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body request_models.UpdateStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /hr/requests/{id}/status [patch]
func (r *RequestController) UpdateStatus(c *gin.Context) {
	var req request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	detail, err := r.requestService.UpdateStatus(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Request status updated successfully")
}

// Close godoc
// @Summary Close a request
// @Description Mark the request CLOSED; it accepts no further messages or status changes
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /hr/requests/{id}/close [post]
func (r *RequestController) Close(c *gin.Context) {
	detail, err := r.requestService.Close(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Request closed successfully")
}
