package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/conveyancing-service/internal/api/http/handlers"
	"github.com/spec-kit/conveyancing-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Cases          *handlers.CasesHandler
	Messages       *handlers.MessagesHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything but register/login and the
// health probes sits behind the auth guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/users/me", cfg.Users.Me)

	protected.Post("/cases", cfg.Cases.Create)
	protected.Get("/cases", cfg.Cases.ListAll)
	protected.Get("/mycases", cfg.Cases.ListMine)
	protected.Get("/cases/:id", cfg.Cases.Get)
	protected.Put("/cases/:id", cfg.Cases.Update)
	protected.Delete("/cases/:id", cfg.Cases.Delete)

	protected.Get("/cases/:id/messages", cfg.Messages.List)
	protected.Post("/cases/:id/messages", cfg.Messages.Post)
	protected.Delete("/cases/:caseId/messages/:messageId", cfg.Messages.Delete)

	protected.Get("/report/:id", cfg.Reports.Download)
}
