package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type StudentProfilePostgreSQL struct {
	baseRepository
}

func NewStudentProfilePostgreSQL(db *gorm.DB) repositories.StudentProfileRepository {
	return &StudentProfilePostgreSQL{baseRepository{db: db}}
}

func (s *StudentProfilePostgreSQL) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.StudentProfile, error) {
	db := s.getDB(tx)
	var profile models.StudentProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, wrapError(err, "failed to get profile of %s", userID)
	}
	return &profile, nil
}

// IncrementPoints is a single upsert so concurrent gradings never lose an update.
func (s *StudentProfilePostgreSQL) IncrementPoints(ctx context.Context, tx *gorm.DB, userID string, points int) error {
	db := s.getDB(tx)
	profile := models.StudentProfile{UserID: userID, TotalPoints: points}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_points": gorm.Expr("student_profiles.total_points + ?", points),
			"updated_at":   time.Now(),
		}),
	}).Create(&profile).Error
	return wrapError(err, "failed to add %d points to %s", points, userID)
}

func (s *StudentProfilePostgreSQL) SetTotalPoints(ctx context.Context, tx *gorm.DB, userID string, total int) error {
	db := s.getDB(tx)
	profile := models.StudentProfile{UserID: userID, TotalPoints: total}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_points", "updated_at"}),
	}).Create(&profile).Error
	return wrapError(err, "failed to set points of %s", userID)
}

func (s *StudentProfilePostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.StudentProfile, error) {
	db := s.getDB(tx)
	var profiles []*models.StudentProfile
	if err := db.WithContext(ctx).Order("user_id").Find(&profiles).Error; err != nil {
		return nil, wrapError(err, "failed to list profiles")
	}
	return profiles, nil
}
