package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pulse/internal/models/response_models"
	"pulse/internal/services"
	"pulse/pkg/aigateway"
	"pulse/pkg/utils"
)

type FeedbackController struct {
	feedbackService  services.FeedbackServiceInterface
	faceLoginService services.FaceLoginServiceInterface
}

func NewFeedbackController(
	feedbackService services.FeedbackServiceInterface,
	faceLoginService services.FaceLoginServiceInterface,
) *FeedbackController {
	return &FeedbackController{
		feedbackService:  feedbackService,
		faceLoginService: faceLoginService,
	}
}

// CreateFeedback godoc
// @Summary Submit an emotion feedback photo
// @Description Analyze the uploaded face photo and record the detected emotion, optionally attached to an event
// @Tags Feedback
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Face photo"
// @Param event_id formData string false "Event ID; empty or zero means no event"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /employee/feedback [post]
func (f *FeedbackController) CreateFeedback(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	data, filename, err := readFormFile(c, "file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Photo file is required")
		return
	}

	feedback, err := f.feedbackService.CreateFromPhoto(c.Request.Context(), userID, data, filename, c.PostForm("event_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, response_models.FeedbackCreatedResponse{
		ID:      feedback.ID.String(),
		Emotion: feedback.Emotion,
	}, "Feedback recorded successfully")
}

// ListMyFeedback godoc
// @Summary List the caller's feedback history
// @Description Return the authenticated employee's recorded feedbacks, newest first
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /employee/feedback [get]
func (f *FeedbackController) ListMyFeedback(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	feedbacks, err := f.feedbackService.ListMyFeedback(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, feedbacks, "Feedback history retrieved successfully")
}

// PhotoLogin godoc
// @Summary Verify the caller's face photo
// @Description Compare the uploaded photo against the stored reference photo; a match queues a deferred emotion feedback
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Face photo"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /photo-login [post]
func (f *FeedbackController) PhotoLogin(c *gin.Context) {
	data, filename, err := readFormFile(c, "photo")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Photo file is required")
		return
	}

	err = f.faceLoginService.VerifyPhoto(c.Request.Context(), c.GetString("user_id"), data, filename)
	if err != nil {
		// A mismatch carries an explicit verdict; anything else (missing
		// reference photo, AI outage) goes through the shared mapping so an
		// unavailable upstream never reads as "wrong face".
		if errors.Is(err, utils.ErrFaceMismatch) {
			c.JSON(http.StatusUnauthorized, utils.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: err.Error(),
				TraceID: c.GetString("trace_id"),
				Data: response_models.PhotoLoginResponse{
					Verdict: string(aigateway.VerdictNo),
					Detail:  "face does not match the reference photo",
				},
			})
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PhotoLoginResponse{
		Verdict: string(aigateway.VerdictYes),
		Detail:  "face verified",
	}, "Photo verified successfully")
}
