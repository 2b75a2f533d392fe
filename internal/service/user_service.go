package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/pos-service/internal/auth"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// UserService serves user lookups for authenticated callers.
type UserService struct {
	users  repository.UserRepository
	cache  repository.UserCache
	logger *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, cache repository.UserCache, logger *zap.Logger) *UserService {
	if cache == nil {
		cache = repository.NewUserCache(nil, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, cache: cache, logger: logger}
}

// CurrentUser returns the profile behind an authenticated identity.
func (s *UserService) CurrentUser(ctx context.Context, identity *auth.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	cached, err := s.cache.Get(ctx, identity.Email)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		s.logger.Warn("read cached profile", zap.Error(err))
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn("write cached profile", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

// GetByEmail looks a user up by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// GetByID looks a user up by id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
