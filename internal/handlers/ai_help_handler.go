package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

type AIHelpHandler struct {
	BaseHandler
	assistant services.AssistantService
}

func NewAIHelpHandler(assistant services.AssistantService, logger utils.Logger) *AIHelpHandler {
	return &AIHelpHandler{
		BaseHandler: NewBaseHandler(logger),
		assistant:   assistant,
	}
}

// Help answers with study guidance for a question
// @Summary AI help
// @Description Templated guidance chosen by whether an answer was given and whether it was correct.
// @Tags ai-help
// @Accept json
// @Produce json
// @Param request body services.AIHelpRequest true "Question"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Question required"
// @Failure 500 {object} ErrorResponse
// @Router /ai-help [post]
func (h *AIHelpHandler) Help(c *gin.Context) {
	var req services.AIHelpRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		h.respondError(c, http.StatusBadRequest, "Question required")
		return
	}

	response, err := h.assistant.Help(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
