package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/cache"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type UserPostgreSQL struct {
	baseRepository
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil, 0, 0, nil)
	}
	return &UserPostgreSQL{
		baseRepository: baseRepository{db: db},
		cacheManager:   cacheManager,
	}
}

func (u *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := u.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapError(err, "failed to create user")
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.Email)
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	db := u.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, wrapError(err, "failed to get user %s", id)
	}
	return &user, nil
}

// GetByEmail reads through the user cache. Lookups inside a transaction skip it.
func (u *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	fetch := func() (interface{}, error) {
		var user models.User
		if err := u.getDB(tx).WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
			return nil, wrapError(err, "failed to get user by email")
		}
		return &user, nil
	}

	if tx != nil {
		value, err := fetch()
		if err != nil {
			return nil, err
		}
		return value.(*models.User), nil
	}

	var user models.User
	if err := u.cacheManager.User.CacheOrExecute(ctx, cache.UserEmailKey(email), &user, fetch); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := u.getDB(tx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return wrapError(err, "failed to update user %s", user.ID)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.Email)
	return nil
}

func (u *UserPostgreSQL) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	db := u.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrapError(err, "failed to check user %s", id)
	}
	return count > 0, nil
}
