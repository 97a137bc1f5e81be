package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type TaskPostgreSQL struct {
	baseRepository
}

func NewTaskPostgreSQL(db *gorm.DB) repositories.TaskRepository {
	return &TaskPostgreSQL{baseRepository{db: db}}
}

func (t *TaskPostgreSQL) Create(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	db := t.getDB(tx)
	return wrapError(db.WithContext(ctx).Create(task).Error, "failed to create task")
}

func (t *TaskPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error) {
	db := t.getDB(tx)
	var task models.Task
	if err := db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, wrapError(err, "failed to get task %s", id)
	}
	return &task, nil
}

func (t *TaskPostgreSQL) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error) {
	db := t.getDB(tx)
	var task models.Task
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, wrapError(err, "failed to lock task %s", id)
	}
	return &task, nil
}

func (t *TaskPostgreSQL) Update(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	db := t.getDB(tx)
	return wrapError(db.WithContext(ctx).Omit(clause.Associations).Save(task).Error, "failed to update task %s", task.ID)
}

func (t *TaskPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.TaskFilters) ([]*models.Task, error) {
	db := t.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Task{})

	switch {
	case filters.StudentID != "":
		query = query.Where("student_id = ?", filters.StudentID)
	case filters.TeacherID != "":
		query = query.Where("teacher_id = ?", filters.TeacherID)
	}

	if filters.IncludeGrades {
		query = query.Preload("Grades")
	}

	var tasks []*models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, wrapError(err, "failed to list tasks")
	}
	return tasks, nil
}
