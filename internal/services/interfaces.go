package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateTaskRequest = validator.CreateTaskRequest
type UpdateTaskRequest = validator.UpdateTaskRequest
type CreateAppointmentRequest = validator.CreateAppointmentRequest
type UpdateAppointmentRequest = validator.UpdateAppointmentRequest
type SendMessageRequest = validator.SendMessageRequest
type MarkReadRequest = validator.MarkReadRequest
type SelectRoleRequest = validator.SelectRoleRequest
type CreateVideoRequest = validator.CreateVideoRequest
type AIHelpRequest = validator.AIHelpRequest
type CreateMeetingRequest = validator.CreateMeetingRequest
type MeetingTokenRequest = validator.MeetingTokenRequest

// GradeResult is the outcome of grading one task
type GradeResult struct {
	Task  *models.Task  `json:"task"`
	Grade *models.Grade `json:"grade"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	// GetOrCreate returns the user owning identity.Email, creating a student on first sight
	GetOrCreate(ctx context.Context, identity *models.Identity) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SelectRole(ctx context.Context, userID string, req *SelectRoleRequest) (*models.User, error)
}

type TaskService interface {
	Create(ctx context.Context, req *CreateTaskRequest, caller *models.User) (*models.Task, error)
	// List returns tasks authored by caller, or tasks of studentID when it is set
	List(ctx context.Context, caller *models.User, studentID string) ([]*models.Task, error)
	// Update records an answer or, when correctness is supplied, grades the task
	Update(ctx context.Context, req *UpdateTaskRequest, caller *models.User) (*models.Task, error)
}

type GradingService interface {
	Grade(ctx context.Context, req *UpdateTaskRequest, graderID string) (*GradeResult, error)
}

type AnalyticsService interface {
	Summary(ctx context.Context, studentID string) (*models.AnalyticsSummary, error)
	ExportGrades(ctx context.Context, caller *models.User, w io.Writer) error
	// ReconcilePoints compares profile totals with the ledger; fix rewrites drifting totals
	ReconcilePoints(ctx context.Context, fix bool) ([]models.PointsDrift, error)
}

type AppointmentService interface {
	List(ctx context.Context, caller *models.User, asTeacher bool) ([]*models.Appointment, error)
	Create(ctx context.Context, req *CreateAppointmentRequest, caller *models.User) (*models.Appointment, error)
	Update(ctx context.Context, req *UpdateAppointmentRequest, callerID string) (*models.Appointment, error)
}

type MessageService interface {
	Thread(ctx context.Context, callerID, otherID string) ([]*models.MessageResponse, error)
	Send(ctx context.Context, senderID string, req *SendMessageRequest) (*models.MessageResponse, error)
	MarkRead(ctx context.Context, callerID string, req *MarkReadRequest) (int64, error)
}

type VideoService interface {
	// List returns featured videos, or the built-in catalogue when none exist
	List(ctx context.Context) ([]*models.Video, error)
	Create(ctx context.Context, req *CreateVideoRequest) (*models.Video, error)
	RecordView(ctx context.Context, id string) (*models.Video, error)
	// SeedDefaults inserts the built-in catalogue and returns how many rows were added
	SeedDefaults(ctx context.Context) (int, error)
}

type AssistantService interface {
	Help(ctx context.Context, req *AIHelpRequest) (string, error)
}

type MeetingService interface {
	CreateRoom(ctx context.Context, caller *models.User, req *CreateMeetingRequest) (*models.MeetingRoom, error)
	IssueToken(ctx context.Context, caller *models.User, req *MeetingTokenRequest) (*models.MeetingToken, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	User() UserService
	Task() TaskService
	Grading() GradingService
	Analytics() AnalyticsService
	Appointment() AppointmentService
	Message() MessageService
	Video() VideoService
	Assistant() AssistantService
	Meeting() MeetingService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
