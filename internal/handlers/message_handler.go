package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

type MessageHandler struct {
	BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService, logger utils.Logger) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    NewBaseHandler(logger),
		messageService: messageService,
	}
}

// GetThread returns the conversation between the caller and another user
// @Summary Get message thread
// @Description Messages in both directions between the caller and userId, oldest first.
// @Tags messages
// @Produce json
// @Param userId query string true "Other participant"
// @Success 200 {object} map[string][]models.MessageResponse
// @Failure 400 {object} ErrorResponse "User ID required"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) GetThread(c *gin.Context) {
	otherID := strings.TrimSpace(c.Query("userId"))
	if otherID == "" {
		h.respondError(c, http.StatusBadRequest, "User ID required")
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	messages, err := h.messageService.Thread(c.Request.Context(), user.ID, otherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage sends a message to another user
// @Summary Send message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body services.SendMessageRequest true "Message"
// @Success 200 {object} map[string]models.MessageResponse
// @Failure 400 {object} ErrorResponse "Receiver ID and content required"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req services.SendMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.ReceiverID) == "" || strings.TrimSpace(req.Content) == "" {
		h.respondError(c, http.StatusBadRequest, "Receiver ID and content required")
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Sending message", "sender_id", user.ID, "receiver_id", req.ReceiverID)

	message, err := h.messageService.Send(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// MarkRead marks every unread message from senderId to the caller as read
// @Summary Mark messages read
// @Tags messages
// @Accept json
// @Produce json
// @Param request body services.MarkReadRequest true "Sender"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [patch]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req services.MarkReadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	count, err := h.messageService.MarkRead(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.LogRequest(c, "Messages marked read", "receiver_id", user.ID, "sender_id", req.SenderID, "count", count)

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
