package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/models/request_models"
	"pulse/internal/services"
	"pulse/pkg/utils"
)

type AnalyticsController struct {
	analyticsService services.AnalyticsServiceInterface
}

func NewAnalyticsController(analyticsService services.AnalyticsServiceInterface) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// Overview godoc
// @Summary Feedback overview for the caller's company
// @Description Totals, average confidence and per-emotion breakdown over a date range
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Param event_id query string false "Event ID"
// @Param has_event query bool false "Only feedback with (or without) an event"
// @Param department_id query string false "Department ID"
// @Param department query string false "Department name"
// @Param emotions query []string false "Emotion filter"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /hr/analytics/feedbacks [get]
func (a *AnalyticsController) Overview(c *gin.Context) {
	var query request_models.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	report, err := a.analyticsService.Overview(c.Request.Context(), c.GetString("user_id"), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Overview fetched successfully")
}

// MyStats godoc
// @Summary Personal feedback statistics
// @Description Totals, average confidence and per-emotion breakdown for the caller's own feedbacks
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /employee/stats [get]
func (a *AnalyticsController) MyStats(c *gin.Context) {
	var query request_models.MyStatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid date filters")
		return
	}

	report, err := a.analyticsService.MyStats(c.Request.Context(), c.GetString("user_id"), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Personal statistics fetched successfully")
}

// Timeline godoc
// @Summary Feedback counts over time
// @Description Per-emotion counts bucketed by day or month
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Param group_by query string false "Bucket size: day or month" default(day)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /hr/analytics/timeline [get]
func (a *AnalyticsController) Timeline(c *gin.Context) {
	var query request_models.TimelineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	report, err := a.analyticsService.Timeline(c.Request.Context(), c.GetString("user_id"), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Timeline fetched successfully")
}

// ByUser godoc
// @Summary Feedback totals per employee
// @Description Most active feedback submitters with average confidence and dominant emotion
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Param limit query int false "Row limit" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /hr/analytics/by-user [get]
func (a *AnalyticsController) ByUser(c *gin.Context) {
	var query request_models.ByUserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	report, err := a.analyticsService.ByUser(c.Request.Context(), c.GetString("user_id"), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Report fetched successfully")
}
