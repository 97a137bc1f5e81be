package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type AppointmentPostgreSQL struct {
	baseRepository
}

func NewAppointmentPostgreSQL(db *gorm.DB) repositories.AppointmentRepository {
	return &AppointmentPostgreSQL{baseRepository{db: db}}
}

func (a *AppointmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error {
	db := a.getDB(tx)
	return wrapError(db.WithContext(ctx).Create(appointment).Error, "failed to create appointment")
}

func (a *AppointmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Appointment, error) {
	db := a.getDB(tx)
	var appointment models.Appointment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error; err != nil {
		return nil, wrapError(err, "failed to get appointment %s", id)
	}
	return &appointment, nil
}

func (a *AppointmentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, appointment *models.Appointment) error {
	db := a.getDB(tx)
	return wrapError(db.WithContext(ctx).Save(appointment).Error, "failed to update appointment %s", appointment.ID)
}

func (a *AppointmentPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Appointment, error) {
	return a.listBy(ctx, tx, "student_id", studentID)
}

func (a *AppointmentPostgreSQL) ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Appointment, error) {
	return a.listBy(ctx, tx, "teacher_id", teacherID)
}

func (a *AppointmentPostgreSQL) listBy(ctx context.Context, tx *gorm.DB, column, id string) ([]*models.Appointment, error) {
	db := a.getDB(tx)
	var appointments []*models.Appointment
	if err := db.WithContext(ctx).
		Where(column+" = ?", id).
		Order("date ASC").
		Find(&appointments).Error; err != nil {
		return nil, wrapError(err, "failed to list appointments")
	}
	return appointments, nil
}
