package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

type VideoHandler struct {
	BaseHandler
	videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService, logger utils.Logger) *VideoHandler {
	return &VideoHandler{
		BaseHandler:  NewBaseHandler(logger),
		videoService: videoService,
	}
}

// ListVideos lists featured videos
// @Summary List videos
// @Description Up to 12 featured videos by views. A built-in catalogue of six is returned while none exist.
// @Tags videos
// @Produce json
// @Success 200 {object} map[string][]models.Video
// @Failure 500 {object} ErrorResponse
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// CreateVideo publishes a featured video
// @Summary Create video
// @Tags videos
// @Accept json
// @Produce json
// @Param video body services.CreateVideoRequest true "Video"
// @Success 200 {object} map[string]models.Video
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /videos [post]
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req services.CreateVideoRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.LogRequest(c, "Creating video", "youtube_id", req.YouTubeID)

	video, err := h.videoService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"video": video})
}

// RecordView increments the view counter of a video
// @Summary Record video view
// @Tags videos
// @Accept json
// @Produce json
// @Param request body validator.RecordViewRequest true "Video"
// @Success 200 {object} map[string]models.Video
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /videos [patch]
func (h *VideoHandler) RecordView(c *gin.Context) {
	var req validator.RecordViewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	video, err := h.videoService.RecordView(c.Request.Context(), req.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"video": video})
}
