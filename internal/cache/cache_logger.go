package cache

import (
	"context"
	"fmt"
)

// SafeInvalidatePattern invalidates a pattern and logs instead of failing
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		helper.logger.Error("Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys and logs instead of failing
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		helper.logger.Error("Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// UserEmailKey is the key under which a user is cached by email.
func UserEmailKey(email string) string {
	return fmt.Sprintf("email:%s", email)
}

// FeaturedVideosKey is the key of the featured list of the given size.
func FeaturedVideosKey(limit int) string {
	return fmt.Sprintf("featured:%d", limit)
}

// InvalidateUserCache drops the cached copy of a user.
func InvalidateUserCache(ctx context.Context, cm *CacheManager, email string) {
	SafeDelete(ctx, cm.User, UserEmailKey(email))
}

// InvalidateVideoCache drops every cached video list.
func InvalidateVideoCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Video, "featured:*")
}
