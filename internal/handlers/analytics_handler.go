package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
	}
}

// GetSummary returns the caller's grade statistics
// @Summary Get analytics
// @Description Total points, graded task count, mean awarded points and the 10 most recent grades.
// @Tags analytics
// @Produce json
// @Success 200 {object} models.AnalyticsSummary
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportGrades downloads the caller's grade ledger as a workbook
// @Summary Export grades
// @Description Students get their own grades, teachers the grades on tasks they authored.
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/export [get]
func (h *AnalyticsHandler) ExportGrades(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Exporting grades", "user_id", user.ID, "role", user.Role)

	var buf bytes.Buffer
	if err := h.analyticsService.ExportGrades(c.Request.Context(), user, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("grades-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
