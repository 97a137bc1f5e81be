package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
)

// ===== TASKS =====

// TaskFilters selects tasks either by author or by target student.
// StudentID takes precedence when both are set.
type TaskFilters struct {
	TeacherID     string
	StudentID     string
	IncludeGrades bool
}

type TaskRepository interface {
	Create(ctx context.Context, tx *gorm.DB, task *models.Task) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error)
	Update(ctx context.Context, tx *gorm.DB, task *models.Task) error
	// List returns matching tasks, newest first.
	List(ctx context.Context, tx *gorm.DB, filters TaskFilters) ([]*models.Task, error)
}

// ===== GRADE LEDGER =====

type GradeRepository interface {
	// Create appends a ledger row. A second row for the same task fails.
	Create(ctx context.Context, tx *gorm.DB, grade *models.Grade) error
	ExistsByTask(ctx context.Context, tx *gorm.DB, taskID string) (bool, error)
}

// ===== POINTS ACCUMULATOR =====

type StudentProfileRepository interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.StudentProfile, error)
	// IncrementPoints adds points to the total, creating the profile when missing.
	IncrementPoints(ctx context.Context, tx *gorm.DB, userID string, points int) error
	SetTotalPoints(ctx context.Context, tx *gorm.DB, userID string, total int) error
	List(ctx context.Context, tx *gorm.DB) ([]*models.StudentProfile, error)
}

// ===== APPOINTMENTS =====

type AppointmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Appointment, error)
	Update(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error
	// ListByStudent and ListByTeacher order by appointment date ascending.
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Appointment, error)
	ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Appointment, error)
}

// ===== MESSAGES =====

type MessageRepository interface {
	Create(ctx context.Context, tx *gorm.DB, message *models.Message) error
	// GetByID loads the message with sender and receiver.
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Message, error)
	// ListThread returns messages exchanged between a and b in both directions, oldest first.
	ListThread(ctx context.Context, tx *gorm.DB, a, b string) ([]*models.Message, error)
	// MarkRead flips read on unread messages from senderID to receiverID and returns the count.
	MarkRead(ctx context.Context, tx *gorm.DB, senderID, receiverID string) (int64, error)
}

// ===== VIDEOS =====

type VideoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, video *models.Video) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Video, error)
	// ListFeatured returns featured videos by views, most viewed first.
	ListFeatured(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Video, error)
	IncrementViews(ctx context.Context, tx *gorm.DB, id string) (*models.Video, error)
}
