// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// DefaultTTL is how long a credential record stays cached when no TTL is configured.
const DefaultTTL = 5 * time.Minute

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// CachingUserRepository decorates a UserRepository with Redis caching of lookups.
// Only found users are cached; misses always reach the inner repository so a
// freshly registered username is visible immediately.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// cachedUser is the JSON form of a cached entity.User.
type cachedUser struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to DefaultTTL. If namespace is empty, it uses "users".
// A nil rdb disables caching entirely.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the user through the inner repository and drops any cached entry for the name.
func (c *CachingUserRepository) Create(ctx context.Context, username, passwordHash string) (uint, error) {
	id, err := c.inner.Create(ctx, username, passwordHash)
	if err != nil {
		return 0, err
	}
	if c.rdb != nil {
		// Best effort: a stale entry would only survive until its TTL
		if err := c.rdb.Del(ctx, c.cacheKey(username)).Err(); err != nil {
			slog.Warn("credential cache invalidation failed", "error", err)
		}
	}
	return id, nil
}

// FindByUsername checks the cache first and falls back to the inner repository.
func (c *CachingUserRepository) FindByUsername(ctx context.Context, username string) (entity.User, bool, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByUsername(ctx, username)
	}

	key := c.cacheKey(username)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cu cachedUser
		if err := json.Unmarshal(b, &cu); err == nil && cu.Username == username {
			return entity.User{
				ID:           cu.ID,
				Username:     cu.Username,
				PasswordHash: cu.PasswordHash,
				CreatedAt:    cu.CreatedAt,
			}, true, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	user, ok, err := c.inner.FindByUsername(ctx, username)
	if err != nil || !ok {
		return user, ok, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return user, true, nil
}

// cacheKey maps a username to its Redis key. The username is base64url encoded
// so that distinct usernames never share a key.
func (c *CachingUserRepository) cacheKey(username string) string {
	return c.namespace + ":" + base64.RawURLEncoding.EncodeToString([]byte(username))
}
