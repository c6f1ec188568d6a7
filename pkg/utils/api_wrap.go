package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/pkg/aigateway"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError translates service-layer sentinels into HTTP responses.
// AI gateway failures always come out as 503 so clients can tell "try again
// later" apart from "you are not authorized".
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrNoReferencePhoto),
		errors.Is(err, ErrNotParticipant),
		errors.Is(err, ErrRequestClosed),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserInactive),
		errors.Is(err, ErrInvalidRefresh),
		errors.Is(err, ErrFaceMismatch):
		RespondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCompanyNotFound),
		errors.Is(err, ErrDepartmentNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrRequestTypeNotFound):
		RespondError(c, http.StatusNotFound, err.Error())

	case aigateway.IsUpstreamError(err):
		log.Printf("AI gateway error: %v", err)
		RespondError(c, http.StatusServiceUnavailable, "AI service unavailable")

	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")

	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
