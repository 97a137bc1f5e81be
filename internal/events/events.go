package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "tutoring-service"
	EventVersion = "1.0"
)

// Event types
const (
	TaskCreated        = "task.created"
	TaskAnswered       = "task.answered"
	TaskGraded         = "task.graded"
	AppointmentCreated = "appointment.created"
	AppointmentUpdated = "appointment.updated"
	MessageSent        = "message.sent"
	MessagesRead       = "message.read"
	UserRoleSelected   = "user.role_selected"
	VideoCreated       = "video.created"
)

// Event is the envelope every domain event travels in
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps data with a fresh id and the current time
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers events to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// ===== PAYLOADS =====

type TaskCreatedData struct {
	TaskID    string `json:"taskId"`
	TeacherID string `json:"teacherId"`
	StudentID string `json:"studentId"`
	Points    int    `json:"points"`
}

type TaskAnsweredData struct {
	TaskID    string `json:"taskId"`
	StudentID string `json:"studentId"`
}

type TaskGradedData struct {
	TaskID    string `json:"taskId"`
	GradeID   string `json:"gradeId"`
	TeacherID string `json:"teacherId"`
	StudentID string `json:"studentId"`
	IsCorrect bool   `json:"isCorrect"`
	Points    int    `json:"points"`
}

type AppointmentData struct {
	AppointmentID string `json:"appointmentId"`
	StudentID     string `json:"studentId"`
	TeacherID     string `json:"teacherId"`
	Status        string `json:"status"`
}

type MessageSentData struct {
	MessageID  string `json:"messageId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

type MessagesReadData struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Count      int64  `json:"count"`
}

type UserRoleSelectedData struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type VideoCreatedData struct {
	VideoID   string `json:"videoId"`
	YouTubeID string `json:"youtubeId"`
}
