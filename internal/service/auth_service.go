package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/pos-service/internal/auth"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/events"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

const (
	signUpMessage = "Register Successfully!"
	logInMessage  = "Login Successfully!"
)

var (
	ErrEmailTaken          = apperrors.NewValidationError("email already registered", nil)
	ErrAdminRoleNotAllowed = apperrors.NewValidationError("role ROLE_ADMIN is not allowed", nil)
	ErrUnknownRole         = apperrors.NewValidationError("unknown role", map[string]any{"allowed": domain.AssignableRoles()})
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperrors.NewCredentialFailure()
)

// SignUpInput carries the fields of a new account.
type SignUpInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Role     domain.UserRole
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Message   string
	User      *domain.User
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users  repository.UserRepository
	cache  repository.UserCache
	tokens *auth.TokenCodec
	hasher *auth.PasswordHasher
	events events.Dispatcher
	logger *zap.Logger
	now    func() time.Time

	dummyHash string
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	Users  repository.UserRepository
	Cache  repository.UserCache
	Tokens *auth.TokenCodec
	Hasher *auth.PasswordHasher
	Events events.Dispatcher
	Logger *zap.Logger
	Clock  func() time.Time
}

// unknownUserPassword is hashed once at construction; logins for unknown
// emails compare against that hash.
var unknownUserPassword = "pos-service-unknown-user"

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	s := &AuthService{
		users:  deps.Users,
		cache:  deps.Cache,
		tokens: deps.Tokens,
		hasher: deps.Hasher,
		events: deps.Events,
		logger: deps.Logger,
		now:    deps.Clock,
	}
	if s.cache == nil {
		s.cache = repository.NewUserCache(nil, 0)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	if s.hasher == nil {
		return nil, errors.New("password hasher is required")
	}
	dummyHash, err := s.hasher.Hash(unknownUserPassword)
	if err != nil {
		return nil, fmt.Errorf("build unknown-user hash: %w", err)
	}
	s.dummyHash = dummyHash
	return s, nil
}

// SignUp creates a new account and returns a token for it.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if in.Role == domain.RoleAdmin {
		return nil, ErrAdminRoleNotAllowed
	}
	if !in.Role.Valid() {
		return nil, ErrUnknownRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.tokens.Mint(user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user, now, events.UserRegisteredPayload{Role: user.Role}))
	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))

	return &AuthResult{Token: token, ExpiresAt: exp, Message: signUpMessage, User: user}, nil
}

// LogIn authenticates a user by email and password.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison so response time
			// does not reveal whether the email exists.
			_, _ = s.hasher.Matches(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Matches(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash unreadable", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	user.UpdatedAt = now

	if err := s.cache.Delete(ctx, user.Email); err != nil {
		s.logger.Warn("evict cached profile", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	token, exp, err := s.tokens.Mint(user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user, now, events.UserLoggedInPayload{Role: user.Role, LastLoginAt: now}))

	return &AuthResult{Token: token, ExpiresAt: exp, Message: logInMessage, User: user}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
