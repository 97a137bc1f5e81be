package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

const defaultAppointmentMinutes = 60

type appointmentService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAppointmentService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, publisher events.EventPublisher) AppointmentService {
	return &appointmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *appointmentService) List(ctx context.Context, caller *models.User, asTeacher bool) ([]*models.Appointment, error) {
	var (
		appointments []*models.Appointment
		err          error
	)
	if asTeacher {
		appointments, err = s.repo.Appointment().ListByTeacher(ctx, nil, caller.ID)
	} else {
		appointments, err = s.repo.Appointment().ListByStudent(ctx, nil, caller.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if appointments == nil {
		appointments = []*models.Appointment{}
	}
	return appointments, nil
}

func (s *appointmentService) Create(ctx context.Context, req *CreateAppointmentRequest, caller *models.User) (*models.Appointment, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, NewValidationError("date", "date is required", nil)
	}
	duration := req.Duration.OrDefault(defaultAppointmentMinutes)
	if duration <= 0 {
		return nil, NewValidationError("duration", "duration must be positive", duration)
	}

	teacherID := strings.TrimSpace(req.TeacherID)
	exists, err := s.repo.User().ExistsByID(ctx, nil, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to check teacher: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	appointment := &models.Appointment{
		StudentID:   caller.ID,
		TeacherID:   teacherID,
		TeacherName: strings.TrimSpace(req.TeacherName),
		Subject:     strings.TrimSpace(req.Subject),
		Date:        req.Date.Time,
		Duration:    duration,
		Notes:       req.Notes,
		Status:      models.AppointmentPending,
	}
	if err := s.repo.Appointment().Create(ctx, nil, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.logger.Info("Appointment created", "appointment_id", appointment.ID, "student_id", caller.ID, "teacher_id", teacherID)
	publishEvent(ctx, s.publisher, s.logger, events.AppointmentCreated, appointmentData(appointment))
	return appointment, nil
}

func (s *appointmentService) Update(ctx context.Context, req *UpdateAppointmentRequest, callerID string) (*models.Appointment, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	appointment, err := s.repo.Appointment().GetByID(ctx, nil, req.ID)
	if err != nil {
		return nil, notFoundAs(err, ErrAppointmentNotFound)
	}
	if !appointment.IsParticipant(callerID) {
		return nil, NewPermissionError(callerID, appointment.ID, "appointment", "update", "not a participant")
	}

	appointment.Status = req.Status
	if req.MeetingLink != nil {
		appointment.MeetingLink = req.MeetingLink
	}
	if err := s.repo.Appointment().Update(ctx, nil, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.logger.Info("Appointment updated", "appointment_id", appointment.ID, "status", appointment.Status)
	publishEvent(ctx, s.publisher, s.logger, events.AppointmentUpdated, appointmentData(appointment))
	return appointment, nil
}

func appointmentData(a *models.Appointment) events.AppointmentData {
	return events.AppointmentData{
		AppointmentID: a.ID,
		StudentID:     a.StudentID,
		TeacherID:     a.TeacherID,
		Status:        string(a.Status),
	}
}
