package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/domain"
)

const identityKey = "auth_identity"

type identityCtxKey struct{}

// Identity is the authenticated caller of a single request.
type Identity struct {
	Email string
	Roles []domain.UserRole
}

// HasRole reports whether the identity holds role.
func (i *Identity) HasRole(role domain.UserRole) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the identity holds at least one of roles.
func (i *Identity) HasAnyRole(roles ...domain.UserRole) bool {
	for _, role := range roles {
		if i.HasRole(role) {
			return true
		}
	}
	return false
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromCtx retrieves the identity stored by WithIdentity.
func IdentityFromCtx(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*Identity)
	return identity, ok && identity != nil
}

// IdentityFromContext retrieves the identity the authenticator attached to the request.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
