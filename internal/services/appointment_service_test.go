package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

func TestAppointmentService_Lifecycle(t *testing.T) {
	store := newMemStore()
	publisher := events.NewMockEventPublisher(nil)
	svc := NewAppointmentService(store, utils.NewNopLogger(), validator.New(), publisher)
	ctx := context.Background()

	student := store.addUser("stu", models.RoleStudent)
	teacher := store.addUser("tea", models.RoleTeacher)
	outsider := store.addUser("out", models.RoleStudent)

	later := validator.FlexibleTime{Time: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)}
	sooner := validator.FlexibleTime{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	a1, err := svc.Create(ctx, &CreateAppointmentRequest{TeacherID: teacher.ID, TeacherName: "Tea", Subject: "Math", Date: later}, student)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, a1.Status)
	assert.Equal(t, 60, a1.Duration)
	assert.Equal(t, student.ID, a1.StudentID)

	a2, err := svc.Create(ctx, &CreateAppointmentRequest{TeacherID: teacher.ID, Subject: "Physics", Date: sooner, Duration: validator.IntOf(30)}, student)
	require.NoError(t, err)
	assert.Equal(t, 30, a2.Duration)

	mine, err := svc.List(ctx, student, false)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, a2.ID, mine[0].ID, "ordered by date")

	teaching, err := svc.List(ctx, teacher, true)
	require.NoError(t, err)
	assert.Len(t, teaching, 2)

	none, err := svc.List(ctx, teacher, false)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	link := "https://meet.example.com/room/abc"
	updated, err := svc.Update(ctx, &UpdateAppointmentRequest{ID: a1.ID, Status: models.AppointmentConfirmed, MeetingLink: &link}, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, updated.Status)
	assert.Equal(t, link, *updated.MeetingLink)

	kept, err := svc.Update(ctx, &UpdateAppointmentRequest{ID: a1.ID, Status: models.AppointmentCompleted}, student.ID)
	require.NoError(t, err)
	assert.Equal(t, link, *kept.MeetingLink)

	reopened, err := svc.Update(ctx, &UpdateAppointmentRequest{ID: a1.ID, Status: models.AppointmentPending}, student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, reopened.Status)

	_, err = svc.Update(ctx, &UpdateAppointmentRequest{ID: a1.ID, Status: models.AppointmentCancelled}, outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, &UpdateAppointmentRequest{ID: "missing", Status: models.AppointmentCancelled}, student.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.Len(t, publisher.EventsOfType(events.AppointmentUpdated), 3)
}

func TestAppointmentService_CreateValidation(t *testing.T) {
	store := newMemStore()
	svc := NewAppointmentService(store, utils.NewNopLogger(), validator.New(), nil)
	ctx := context.Background()
	student := store.addUser("stu", models.RoleStudent)
	date := validator.FlexibleTime{Time: time.Now()}

	_, err := svc.Create(ctx, &CreateAppointmentRequest{TeacherID: "ghost", Subject: "Math", Date: date}, student)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Create(ctx, &CreateAppointmentRequest{TeacherID: student.ID, Subject: "Math"}, student)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Create(ctx, &CreateAppointmentRequest{TeacherID: student.ID, Subject: "Math", Date: date, Duration: validator.IntOf(-10)}, student)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestServiceManager_Lifecycle(t *testing.T) {
	sm := NewServiceManager(newMemStore(), nil, validator.New(), events.NewMockEventPublisher(nil), ServiceManagerConfig{})

	assert.Panics(t, func() { sm.Task() })
	assert.Error(t, sm.HealthCheck(context.Background()))

	require.NoError(t, sm.Initialize(context.Background()))
	assert.NotNil(t, sm.User())
	assert.NotNil(t, sm.Task())
	assert.NotNil(t, sm.Grading())
	assert.NotNil(t, sm.Analytics())
	assert.NotNil(t, sm.Appointment())
	assert.NotNil(t, sm.Message())
	assert.NotNil(t, sm.Video())
	assert.NotNil(t, sm.Assistant())
	assert.NotNil(t, sm.Meeting())
	assert.NoError(t, sm.HealthCheck(context.Background()))

	require.NoError(t, sm.Shutdown(context.Background()))
	assert.Error(t, sm.HealthCheck(context.Background()))
}
