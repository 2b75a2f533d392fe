package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/http/handlers"
	"github.com/spec-kit/pos-service/internal/auth"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UsersHandler
	Authenticator *auth.Authenticator
}

// RegisterRoutes wires HTTP routes. The authenticator runs for every request
// before dispatch; groups below add the role gates.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Authenticator.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)
	app.Get("/metrics", cfg.Health.Prometheus)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/login", cfg.Auth.LogIn)

	api := app.Group("/api", auth.RequireAuthenticated())
	api.Get("/users/profile", cfg.Users.Profile)
	api.Get("/users/:id", cfg.Users.GetByID)

	superAdmin := api.Group("/super-admin", auth.RequireRole(domain.RoleAdmin))
	superAdmin.Get("/users", cfg.Users.List)
	superAdmin.Get("/users/by-email", cfg.Users.GetByEmail)

	app.Use(observability.NotFound)
}
