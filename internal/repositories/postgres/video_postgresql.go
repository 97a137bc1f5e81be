package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/cache"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type VideoPostgreSQL struct {
	baseRepository
	cacheManager *cache.CacheManager
}

func NewVideoPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.VideoRepository {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil, 0, 0, nil)
	}
	return &VideoPostgreSQL{
		baseRepository: baseRepository{db: db},
		cacheManager:   cacheManager,
	}
}

func (v *VideoPostgreSQL) Create(ctx context.Context, tx *gorm.DB, video *models.Video) error {
	db := v.getDB(tx)
	if err := db.WithContext(ctx).Create(video).Error; err != nil {
		return wrapError(err, "failed to create video")
	}
	cache.InvalidateVideoCache(ctx, v.cacheManager)
	return nil
}

func (v *VideoPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Video, error) {
	db := v.getDB(tx)
	var video models.Video
	if err := db.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		return nil, wrapError(err, "failed to get video %s", id)
	}
	return &video, nil
}

func (v *VideoPostgreSQL) ListFeatured(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Video, error) {
	var videos []*models.Video
	err := v.cacheManager.Video.CacheOrExecute(ctx, cache.FeaturedVideosKey(limit), &videos, func() (interface{}, error) {
		var rows []*models.Video
		if err := v.getDB(tx).WithContext(ctx).
			Where("featured = ?", true).
			Order("views DESC").
			Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, wrapError(err, "failed to list featured videos")
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (v *VideoPostgreSQL) IncrementViews(ctx context.Context, tx *gorm.DB, id string) (*models.Video, error) {
	db := v.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return nil, wrapError(result.Error, "failed to record view of %s", id)
	}
	if result.RowsAffected == 0 {
		return nil, wrapError(repositories.ErrNotFound, "failed to record view of %s", id)
	}

	cache.InvalidateVideoCache(ctx, v.cacheManager)
	return v.GetByID(ctx, tx, id)
}
