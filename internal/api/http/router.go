package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/updoc-health/updoc/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Users   *handlers.UsersHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/signup_or_login", cfg.Users.SignupOrLogin)
	api.Get("/users", cfg.Users.List)

	api.Post("/tickets", cfg.Tickets.Create)
	api.Get("/tickets", cfg.Tickets.List)
	api.Put("/tickets/:id", cfg.Tickets.UpdateStatus)
	api.Delete("/tickets/:id", cfg.Tickets.Delete)
	api.Get("/tickets/:id/actions", cfg.Tickets.Actions)
}
