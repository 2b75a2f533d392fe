package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// Authenticator validates bearer tokens once per request and attaches the identity.
type Authenticator struct {
	tokens *TokenCodec
	logger *zap.Logger
}

// NewAuthenticator constructs middleware.
func NewAuthenticator(tokens *TokenCodec, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{tokens: tokens, logger: logger}
}

// Handle lets requests without an Authorization header through anonymously,
// attaches the identity for valid tokens and rejects everything else.
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Next()
	}

	identity, err := a.tokens.Verify(header)
	if err != nil {
		a.logger.Debug("bearer token rejected", zap.String("path", c.Path()), zap.Error(err))
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewTokenFailure("token expired", err)
		}
		return apperrors.NewTokenFailure("invalid token", err)
	}

	c.Locals(identityKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
	return c.Next()
}
