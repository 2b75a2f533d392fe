package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/domain"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

func newGateApp(t *testing.T, codec *TokenCodec, reached *int) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Use(NewAuthenticator(codec, nil).Handle)

	handler := func(c *fiber.Ctx) error {
		*reached++
		identity, ok := IdentityFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		fromCtx, ok := IdentityFromCtx(c.UserContext())
		if !ok || fromCtx != identity {
			return c.Status(http.StatusTeapot).SendString("context mismatch")
		}
		return c.SendString(identity.Email)
	}

	app.Get("/open", handler)
	app.Get("/private", RequireAuthenticated(), handler)
	app.Get("/admin", RequireRole(domain.RoleAdmin), handler)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthenticator_AnonymousPassThrough(t *testing.T) {
	codec := newTestCodec(t, &fakeClock{now: time.Now()})
	reached := 0
	app := newGateApp(t, codec, &reached)

	status, body := doRequest(t, app, "/open", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)
	assert.Equal(t, 1, reached)
}

func TestAuthenticator_ValidToken(t *testing.T) {
	codec := newTestCodec(t, &fakeClock{now: time.Now()})
	token, _, err := codec.Mint("a@b.com", domain.RoleUser)
	require.NoError(t, err)

	reached := 0
	app := newGateApp(t, codec, &reached)

	status, body := doRequest(t, app, "/private", BearerPrefix+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@b.com", body)
	assert.Equal(t, 1, reached)
}

func TestAuthenticator_RejectsBeforeHandler(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	expired, _, err := codec.Mint("a@b.com", domain.RoleUser)
	require.NoError(t, err)
	clock.Advance(DefaultTokenTTL + time.Second)

	cases := map[string]string{
		"garbage":      "Bearer garbage",
		"short":        "Bear",
		"other scheme": "Basic dXNlcjpwYXNz",
		"expired":      BearerPrefix + expired,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			reached := 0
			app := newGateApp(t, codec, &reached)

			for _, path := range []string{"/private", "/open"} {
				status, body := doRequest(t, app, path, header)
				assert.Equal(t, http.StatusUnauthorized, status, path)
				assert.Equal(t, apperrors.CodeInvalidToken, body, path)
			}
			assert.Zero(t, reached)
		})
	}
}

func TestRequireAuthenticated_Anonymous(t *testing.T) {
	codec := newTestCodec(t, &fakeClock{now: time.Now()})
	reached := 0
	app := newGateApp(t, codec, &reached)

	status, body := doRequest(t, app, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeUnauthorized, body)
	assert.Zero(t, reached)
}

func TestRequireRole(t *testing.T) {
	codec := newTestCodec(t, &fakeClock{now: time.Now()})
	userToken, _, err := codec.Mint("user@pos.test", domain.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := codec.Mint("admin@pos.test", domain.RoleUser, domain.RoleAdmin)
	require.NoError(t, err)

	reached := 0
	app := newGateApp(t, codec, &reached)

	status, body := doRequest(t, app, "/admin", BearerPrefix+userToken)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.CodeForbidden, body)

	status, _ = doRequest(t, app, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doRequest(t, app, "/admin", BearerPrefix+adminToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin@pos.test", body)
	assert.Equal(t, 1, reached)
}

func TestIdentity_HasRole(t *testing.T) {
	var nilIdentity *Identity
	assert.False(t, nilIdentity.HasRole(domain.RoleUser))

	identity := &Identity{Email: "a@b.com", Roles: []domain.UserRole{domain.RoleCashier}}
	assert.True(t, identity.HasRole(domain.RoleCashier))
	assert.True(t, identity.HasAnyRole(domain.RoleAdmin, domain.RoleCashier))
	assert.False(t, identity.HasAnyRole(domain.RoleAdmin))
}
