package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, RoleStudent.IsValid())
	assert.True(t, RoleTeacher.IsValid())
	assert.False(t, UserRole("admin").IsValid())
	assert.False(t, UserRole("").IsValid())
}

func TestUser_BeforeCreateDefaults(t *testing.T) {
	u := &User{Email: "a@example.com"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, RoleStudent, u.Role)

	kept := &User{ID: "fixed", Role: RoleTeacher}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
	assert.Equal(t, RoleTeacher, kept.Role)
}

func TestTask_IsGraded(t *testing.T) {
	task := &Task{}
	assert.False(t, task.IsGraded())

	incorrect := false
	task.IsCorrect = &incorrect
	assert.True(t, task.IsGraded())
}

func TestAppointment(t *testing.T) {
	a := &Appointment{StudentID: "s", TeacherID: "t"}
	assert.NoError(t, a.BeforeCreate(nil))
	assert.Equal(t, AppointmentPending, a.Status)
	assert.True(t, a.IsParticipant("s"))
	assert.True(t, a.IsParticipant("t"))
	assert.False(t, a.IsParticipant("x"))

	assert.True(t, AppointmentCancelled.IsValid())
	assert.False(t, AppointmentStatus("rescheduled").IsValid())
}

func TestMessage_ToResponse(t *testing.T) {
	img := "https://img.example.com/a.png"
	m := &Message{
		ID:         "m1",
		SenderID:   "a",
		ReceiverID: "b",
		Content:    "hi",
		Sender:     &User{Name: "Alice", Image: &img},
	}

	resp := m.ToResponse()
	assert.Equal(t, "Alice", resp.Sender.Name)
	assert.Equal(t, &img, resp.Sender.Image)
	assert.Nil(t, resp.Receiver)
}
