package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/models/request_models"
	"pulse/internal/services"
	"pulse/pkg/utils"
)

type EventController struct {
	eventService services.EventServiceInterface
}

func NewEventController(eventService services.EventServiceInterface) *EventController {
	return &EventController{eventService: eventService}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create a company event with an optional participant list
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.EventUpsertRequest true "Event payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /hr/events [post]
func (e *EventController) CreateEvent(c *gin.Context) {
	var req request_models.EventUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	event, err := e.eventService.CreateEvent(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, event, "Event created successfully")
}

// GetEvent godoc
// @Summary Get one event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /hr/events/{id} [get]
func (e *EventController) GetEvent(c *gin.Context) {
	event, err := e.eventService.GetEvent(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event fetched successfully")
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replace the event's title, window and participant list
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body request_models.EventUpsertRequest true "Event payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /hr/events/{id} [put]
func (e *EventController) UpdateEvent(c *gin.Context) {
	var req request_models.EventUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	event, err := e.eventService.UpdateEvent(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event updated successfully")
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /hr/events/{id} [delete]
func (e *EventController) DeleteEvent(c *gin.Context) {
	if err := e.eventService.DeleteEvent(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event deleted successfully")
}

// ListCompanyEvents godoc
// @Summary List the company's events
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /hr/events [get]
func (e *EventController) ListCompanyEvents(c *gin.Context) {
	events, err := e.eventService.ListCompanyEvents(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, events, "Events fetched successfully")
}

// ListActiveEvents godoc
// @Summary List the caller's active events
// @Description Events currently in their time window where the caller participates, with a has_feedback flag
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /employee/events [get]
func (e *EventController) ListActiveEvents(c *gin.Context) {
	events, err := e.eventService.ListActiveEventsForEmployee(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, events, "Events fetched successfully")
}
