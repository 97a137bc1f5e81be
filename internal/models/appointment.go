package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every accepted status value.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentCompleted,
	AppointmentCancelled,
}

func (s AppointmentStatus) IsValid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID          string            `json:"id" gorm:"primaryKey;size:36"`
	StudentID   string            `json:"studentId" gorm:"size:36;not null;index"`
	TeacherID   string            `json:"teacherId" gorm:"size:36;not null;index"`
	TeacherName string            `json:"teacherName" gorm:"size:100"`
	Subject     string            `json:"subject" gorm:"size:200;not null"`
	Date        time.Time         `json:"date" gorm:"not null;index"`
	Duration    int               `json:"duration" gorm:"not null"`
	Notes       *string           `json:"notes" gorm:"type:text"`
	Status      AppointmentStatus `json:"status" gorm:"size:20;not null;default:pending"`
	MeetingLink *string           `json:"meetingLink" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = AppointmentPending
	}
	return nil
}

// IsParticipant reports whether userID is the student or the teacher of the appointment.
func (a *Appointment) IsParticipant(userID string) bool {
	return a.StudentID == userID || a.TeacherID == userID
}
