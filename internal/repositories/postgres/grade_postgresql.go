package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type GradePostgreSQL struct {
	baseRepository
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &GradePostgreSQL{baseRepository{db: db}}
}

func (g *GradePostgreSQL) Create(ctx context.Context, tx *gorm.DB, grade *models.Grade) error {
	db := g.getDB(tx)
	return wrapError(db.WithContext(ctx).Omit("Task").Create(grade).Error, "failed to record grade for task %s", grade.TaskID)
}

func (g *GradePostgreSQL) ExistsByTask(ctx context.Context, tx *gorm.DB, taskID string) (bool, error) {
	db := g.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Grade{}).Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		return false, wrapError(err, "failed to check grade for task %s", taskID)
	}
	return count > 0, nil
}
