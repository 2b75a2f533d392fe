package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/pos-service/internal/domain"
)

const userCachePrefix = "pos:user:"

// ErrCacheMiss is returned when no cached profile exists.
var ErrCacheMiss = errors.New("cache miss")

// UserCache stores user profiles keyed by email. Cached profiles never carry
// the password hash.
type UserCache interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, email string) error
}

type cachedUser struct {
	ID          int64           `json:"id"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Role        domain.UserRole `json:"role"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
}

type redisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache returns a Redis-backed cache, or a cache that always misses
// when no client is configured or ttl is zero.
func NewUserCache(client *redis.Client, ttl time.Duration) UserCache {
	if client == nil || ttl <= 0 {
		return noopUserCache{}
	}
	return &redisUserCache{client: client, ttl: ttl}
}

func (c *redisUserCache) Get(ctx context.Context, email string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, userCachePrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return decodeCachedUser(raw)
}

func (c *redisUserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := encodeCachedUser(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userCachePrefix+user.Email, raw, c.ttl).Err()
}

func (c *redisUserCache) Delete(ctx context.Context, email string) error {
	return c.client.Del(ctx, userCachePrefix+email).Err()
}

type noopUserCache struct{}

func (noopUserCache) Get(context.Context, string) (*domain.User, error) { return nil, ErrCacheMiss }
func (noopUserCache) Set(context.Context, *domain.User) error            { return nil }
func (noopUserCache) Delete(context.Context, string) error               { return nil }

func encodeCachedUser(user *domain.User) ([]byte, error) {
	return json.Marshal(cachedUser{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		LastLoginAt: user.LastLoginAt,
	})
}

func decodeCachedUser(raw []byte) (*domain.User, error) {
	var cached cachedUser
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:          cached.ID,
		FullName:    cached.FullName,
		Email:       cached.Email,
		Phone:       cached.Phone,
		Role:        cached.Role,
		CreatedAt:   cached.CreatedAt,
		UpdatedAt:   cached.UpdatedAt,
		LastLoginAt: cached.LastLoginAt,
	}, nil
}
