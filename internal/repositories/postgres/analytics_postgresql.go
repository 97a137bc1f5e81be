package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) repositories.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== STUDENT STATS =====

func (r *analyticsRepository) GetGradeStats(ctx context.Context, tx *gorm.DB, studentID string) (*models.GradeStats, error) {
	db := r.getDB(tx)
	var stats models.GradeStats

	if err := db.WithContext(ctx).
		Model(&models.Grade{}).
		Select("COUNT(*) AS count, COALESCE(AVG(points), 0) AS average, COALESCE(SUM(points), 0) AS sum").
		Where("student_id = ?", studentID).
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to get grade stats: %w", err)
	}

	return &stats, nil
}

func (r *analyticsRepository) GetTotalPoints(ctx context.Context, tx *gorm.DB, studentID string) (int, error) {
	db := r.getDB(tx)
	var total int

	if err := db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Select("COALESCE(MAX(total_points), 0)").
		Where("user_id = ?", studentID).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to get total points: %w", err)
	}

	return total, nil
}

// ===== RECENT ACTIVITY =====

func (r *analyticsRepository) GetRecentGrades(ctx context.Context, tx *gorm.DB, studentID string, limit int) ([]*models.Grade, error) {
	db := r.getDB(tx)
	var grades []*models.Grade

	if err := db.WithContext(ctx).
		Preload("Task").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&grades).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent grades: %w", err)
	}

	return grades, nil
}

// ===== EXPORT =====

func (r *analyticsRepository) GetGradeExportRows(ctx context.Context, tx *gorm.DB, filters repositories.GradeExportFilters) ([]models.GradeExportRow, error) {
	db := r.getDB(tx)
	var rows []models.GradeExportRow

	query := db.WithContext(ctx).
		Table("grades g").
		Select(`g.id AS grade_id, g.task_id, g.student_id, t.student_name, t.question,
			t.points AS max_points, g.points, g.feedback, g.created_at AS graded_at`).
		Joins("JOIN tasks t ON t.id = g.task_id")

	if filters.StudentID != "" {
		query = query.Where("g.student_id = ?", filters.StudentID)
	}
	if filters.TeacherID != "" {
		query = query.Where("t.teacher_id = ?", filters.TeacherID)
	}
	if filters.From != nil {
		query = query.Where("g.created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("g.created_at < ?", *filters.To)
	}

	if err := query.Order("g.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get grade export rows: %w", err)
	}

	return rows, nil
}

// ===== RECONCILIATION =====

func (r *analyticsRepository) GetLedgerSums(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	db := r.getDB(tx)
	var results []struct {
		StudentID string
		Total     int64
	}

	if err := db.WithContext(ctx).
		Model(&models.Grade{}).
		Select("student_id, SUM(points) AS total").
		Group("student_id").
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get ledger sums: %w", err)
	}

	sums := make(map[string]int64, len(results))
	for _, row := range results {
		sums[row.StudentID] = row.Total
	}
	return sums, nil
}
