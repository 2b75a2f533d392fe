package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/domain"
)

func TestMemoryUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &domain.User{FullName: "Ada", Email: "ada@pos.test", PasswordHash: "h", Role: domain.RoleCashier}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, int64(1), user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "ada@pos.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.FullName)

	_, err = repo.GetByEmail(ctx, "nobody@pos.test")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_UniqueEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "ada@pos.test"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{Email: "ada@pos.test"}), ErrDuplicateEmail)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryUserRepository_UpdateLastLoginAndList(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	for _, email := range []string{"b@pos.test", "a@pos.test"} {
		require.NoError(t, repo.Create(ctx, &domain.User{Email: email}))
	}

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, 2, at))
	assert.ErrorIs(t, repo.UpdateLastLogin(ctx, 42, at), ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	require.NotNil(t, users[1].LastLoginAt)
	assert.True(t, at.Equal(*users[1].LastLoginAt))
}
