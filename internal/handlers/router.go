package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

type HandlerManager struct {
	taskHandler        *TaskHandler
	appointmentHandler *AppointmentHandler
	messageHandler     *MessageHandler
	userHandler        *UserHandler
	videoHandler       *VideoHandler
	aiHelpHandler      *AIHelpHandler
	analyticsHandler   *AnalyticsHandler
	meetingHandler     *MeetingHandler
	healthHandler      *HealthHandler
	authMiddleware     *AuthMiddleware
	metrics            *Metrics
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	identityProvider repositories.IdentityProvider,
	metrics *Metrics,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		taskHandler:        NewTaskHandler(serviceManager.Task(), metrics, logger),
		appointmentHandler: NewAppointmentHandler(serviceManager.Appointment(), logger),
		messageHandler:     NewMessageHandler(serviceManager.Message(), logger),
		userHandler:        NewUserHandler(serviceManager.User(), logger),
		videoHandler:       NewVideoHandler(serviceManager.Video(), logger),
		aiHelpHandler:      NewAIHelpHandler(serviceManager.Assistant(), logger),
		analyticsHandler:   NewAnalyticsHandler(serviceManager.Analytics(), logger),
		meetingHandler:     NewMeetingHandler(serviceManager.Meeting(), logger),
		healthHandler:      NewHealthHandler(serviceManager, logger),
		authMiddleware:     NewAuthMiddleware(identityProvider, serviceManager.User(), logger),
		metrics:            metrics,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Health)
	router.GET("/metrics", hm.metrics.Serve)

	auth := hm.authMiddleware
	api := router.Group("/api")

	// Public routes
	api.GET("/videos", hm.videoHandler.ListVideos)
	api.PATCH("/videos", hm.videoHandler.RecordView)
	api.POST("/ai-help", auth.OptionalAuthenticate(), hm.aiHelpHandler.Help)

	authenticated := api.Group("")
	authenticated.Use(auth.Authenticate())
	{
		// The user record is created here, so no RequireUser
		authenticated.GET("/user", hm.userHandler.GetUser)
		authenticated.PUT("/user", hm.userHandler.SelectRole)
	}

	known := api.Group("")
	known.Use(auth.Authenticate(), auth.RequireUser())
	{
		known.GET("/tasks", hm.taskHandler.ListTasks)
		known.POST("/tasks", auth.RequireRole(models.RoleTeacher), hm.taskHandler.CreateTask)
		known.PATCH("/tasks", hm.taskHandler.UpdateTask)

		known.GET("/appointments", hm.appointmentHandler.ListAppointments)
		known.POST("/appointments", hm.appointmentHandler.CreateAppointment)
		known.PATCH("/appointments", hm.appointmentHandler.UpdateAppointment)

		known.GET("/messages", hm.messageHandler.GetThread)
		known.POST("/messages", hm.messageHandler.SendMessage)
		known.PATCH("/messages", hm.messageHandler.MarkRead)

		known.POST("/videos", auth.RequireRole(models.RoleTeacher), hm.videoHandler.CreateVideo)

		known.GET("/analytics", hm.analyticsHandler.GetSummary)
		known.GET("/analytics/export", hm.analyticsHandler.ExportGrades)

		known.POST("/meetings", hm.meetingHandler.CreateRoom)
		known.POST("/meetings/token", hm.meetingHandler.IssueToken)
	}
}
