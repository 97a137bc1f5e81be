package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse acknowledges a request without a resource body
type SuccessResponse struct {
	Success bool `json:"success"`
}

const (
	msgUnauthorized   = "Unauthorized"
	msgUserNotFound   = "User not found"
	msgInvalidPayload = "Invalid request payload"
	msgInternal       = "Internal server error"
)

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with the request scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, keysAndValues ...interface{}) {
	fields := append([]interface{}{"method", c.Request.Method, "path", c.FullPath()}, keysAndValues...)
	utils.FromContext(c, h.logger).Debug(msg, fields...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, keysAndValues ...interface{}) {
	fields := append([]interface{}{"error", err, "path", c.FullPath()}, keysAndValues...)
	utils.FromContext(c, h.logger).Error(msg, fields...)
}

func (h *BaseHandler) respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

func (h *BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   msgInvalidPayload,
			Details: err.Error(),
		})
		return false
	}
	return true
}

// handleServiceError maps a service error onto a status code and an ErrorResponse
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: fieldErrors,
		})
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   validationError.Message,
			Details: validationError,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		h.respondError(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, services.ErrTaskNotFound):
		h.respondError(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, services.ErrAppointmentNotFound):
		h.respondError(c, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, services.ErrVideoNotFound):
		h.respondError(c, http.StatusNotFound, "Video not found")
	case errors.Is(err, services.ErrNotFound):
		h.respondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrTaskAlreadyGraded):
		h.respondError(c, http.StatusConflict, "Task already graded")
	case errors.Is(err, services.ErrRoleAlreadySelected):
		h.respondError(c, http.StatusConflict, "Role already selected")
	case errors.Is(err, services.ErrConflict):
		h.respondError(c, http.StatusConflict, "Conflict")
	case errors.Is(err, services.ErrUnauthorized):
		h.respondError(c, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		h.respondError(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, services.ErrValidationFailed), errors.Is(err, services.ErrBadRequest):
		h.respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrMeetingNotConfigured):
		h.respondError(c, http.StatusServiceUnavailable, "Meeting provider not configured")
	default:
		h.LogError(c, err, "Unhandled service error")
		h.respondError(c, http.StatusInternalServerError, msgInternal)
	}
}
