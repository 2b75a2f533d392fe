package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/domain"
)

func TestCachedUserEncoding_DropsPasswordHash(t *testing.T) {
	login := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID:           7,
		FullName:     "Ada Cashier",
		Email:        "ada@pos.test",
		PasswordHash: "$2a$10$secret",
		Phone:        "+905551112233",
		Role:         domain.RoleCashier,
		CreatedAt:    login.Add(-time.Hour),
		UpdatedAt:    login,
		LastLoginAt:  &login,
	}

	raw, err := encodeCachedUser(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")

	decoded, err := decodeCachedUser(raw)
	require.NoError(t, err)
	assert.Empty(t, decoded.PasswordHash)
	assert.Equal(t, user.ID, decoded.ID)
	assert.Equal(t, user.Email, decoded.Email)
	assert.Equal(t, user.Role, decoded.Role)
	require.NotNil(t, decoded.LastLoginAt)
	assert.True(t, login.Equal(*decoded.LastLoginAt))
}

func TestNewUserCache_WithoutClientAlwaysMisses(t *testing.T) {
	cache := NewUserCache(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{Email: "ada@pos.test"}))
	_, err := cache.Get(ctx, "ada@pos.test")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, cache.Delete(ctx, "ada@pos.test"))
}

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil))
	assert.ErrorIs(t, mapWriteError(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: "23505"}), ErrDuplicateEmail)

	other := &pgconn.PgError{Code: "23502"}
	assert.Same(t, other, mapWriteError(other))
}
