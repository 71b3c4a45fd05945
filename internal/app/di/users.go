// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "auth_backend/internal/feature/auth/adapters"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/cache"
)

// NewUserRepository creates the UserRepository implementation.
// If Redis is available, lookups go through the Redis credential cache.
// Otherwise, the GORM store is used directly.
func NewUserRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) usecase.UserRepository {
	store := authadapters.NewUserGorm(db)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, cacheTTL, store, "users")
	}
	return store
}
