package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/observability"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func readyBody(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()

	app := fiber.New()
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestReady_UnconfiguredDependenciesAreDisabled(t *testing.T) {
	status, body := readyBody(t, NewHealthHandler("pos-service", "test", nil, nil, observability.NewMetrics()))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, map[string]any{"postgres": "disabled", "redis": "disabled"}, body["dependencies"])
}

func TestReady_FailingDependency(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	status, body := readyBody(t, NewHealthHandler("pos-service", "test", ok, down, nil))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, map[string]any{"postgres": "ok", "redis": "connection refused"}, errBody["details"])
}
