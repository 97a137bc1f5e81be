package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
)

// AnalyticsRepository is the read side over the grade ledger and the points totals.
type AnalyticsRepository interface {
	// Student stats
	GetGradeStats(ctx context.Context, tx *gorm.DB, studentID string) (*models.GradeStats, error)
	GetTotalPoints(ctx context.Context, tx *gorm.DB, studentID string) (int, error)

	// Recent grades, newest first, with the graded task preloaded
	GetRecentGrades(ctx context.Context, tx *gorm.DB, studentID string, limit int) ([]*models.Grade, error)

	// Ledger export
	GetGradeExportRows(ctx context.Context, tx *gorm.DB, filters GradeExportFilters) ([]models.GradeExportRow, error)

	// Reconciliation of totals against the ledger
	GetLedgerSums(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
}

// GradeExportFilters scopes the export to one student or to one teacher's tasks.
type GradeExportFilters struct {
	StudentID string
	TeacherID string
	From      *time.Time
	To        *time.Time
}
