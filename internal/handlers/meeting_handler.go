package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

type MeetingHandler struct {
	BaseHandler
	meetingService services.MeetingService
}

func NewMeetingHandler(meetingService services.MeetingService, logger utils.Logger) *MeetingHandler {
	return &MeetingHandler{
		BaseHandler:    NewBaseHandler(logger),
		meetingService: meetingService,
	}
}

// CreateRoom opens a conferencing room
// @Summary Create meeting room
// @Description Generates a room and its link. With appointmentId the link is stored on the appointment.
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body services.CreateMeetingRequest false "Appointment to attach"
// @Success 200 {object} models.MeetingRoom
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /meetings [post]
func (h *MeetingHandler) CreateRoom(c *gin.Context) {
	var req services.CreateMeetingRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	room, err := h.meetingService.CreateRoom(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.LogRequest(c, "Meeting room created", "user_id", user.ID, "room_id", room.RoomID)

	c.JSON(http.StatusOK, room)
}

// IssueToken signs a token that lets the caller join a room
// @Summary Issue meeting token
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body services.MeetingTokenRequest true "Room"
// @Success 200 {object} models.MeetingToken
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Meeting provider not configured"
// @Router /meetings/token [post]
func (h *MeetingHandler) IssueToken(c *gin.Context) {
	var req services.MeetingTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	token, err := h.meetingService.IssueToken(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}
