package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/pos-service/internal/domain"
)

const (
	// BearerPrefix is the exact, case-sensitive scheme prefix of the Authorization header.
	BearerPrefix = "Bearer "
	// DefaultTokenTTL is the lifetime of a minted token.
	DefaultTokenTTL = 86400 * time.Second

	minSecretLength = 32
)

var (
	ErrMissingSigningKey = errors.New("jwt signing key is required")
	ErrWeakSigningKey    = fmt.Errorf("jwt signing key must be at least %d bytes", minSecretLength)
	ErrMissingSubject    = errors.New("token subject email is required")
	ErrMalformedHeader   = errors.New("authorization header must be \"Bearer <token>\"")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
)

// Claims describes the JWT payload. Field names are part of the wire contract.
type Claims struct {
	Email       string            `json:"email"`
	Authorities []domain.UserRole `json:"authorities"`
	jwt.RegisteredClaims
}

// TokenOption customizes a TokenCodec.
type TokenOption func(*TokenCodec)

// WithClock replaces the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(tc *TokenCodec) {
		if now != nil {
			tc.now = now
		}
	}
}

// TokenCodec mints and verifies HS256 tokens with a process-wide secret.
// It is read-only after construction and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec. A missing or short secret is a configuration error.
func NewTokenCodec(secret string, ttl time.Duration, opts ...TokenOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSigningKey
	}
	if len(secret) < minSecretLength {
		return nil, ErrWeakSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	tc := &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tc)
	}
	return tc, nil
}

// TTL returns the lifetime applied to minted tokens.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Mint signs a token for the subject email carrying the given roles.
func (tc *TokenCodec) Mint(email string, roles ...domain.UserRole) (string, time.Time, error) {
	if email == "" {
		return "", time.Time{}, ErrMissingSubject
	}

	now := tc.now()
	claims := &Claims{
		Email:       email,
		Authorities: NormalizeRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Verify validates an Authorization header value of the form "Bearer <token>".
func (tc *TokenCodec) Verify(header string) (*Identity, error) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, ErrMalformedHeader
	}
	raw := header[len(BearerPrefix):]
	if raw == "" {
		return nil, ErrMalformedHeader
	}
	return tc.VerifyToken(raw)
}

// VerifyToken checks signature and expiry of a bare token and returns its identity.
func (tc *TokenCodec) VerifyToken(raw string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(tc.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	for _, role := range claims.Authorities {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, string(role))
		}
	}
	return &Identity{Email: claims.Email, Roles: NormalizeRoles(claims.Authorities)}, nil
}

// NormalizeRoles drops empty and duplicate roles and sorts the rest, so the
// authorities claim is the same for any ordering of the same set.
func NormalizeRoles(roles []domain.UserRole) []domain.UserRole {
	seen := make(map[domain.UserRole]struct{}, len(roles))
	out := make([]domain.UserRole, 0, len(roles))
	for _, role := range roles {
		if role == "" {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
