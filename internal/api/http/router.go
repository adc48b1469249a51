package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/proposal-service/internal/api/http/handlers"
	"github.com/spec-kit/proposal-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Proposals      *handlers.ProposalsHandler
	Templates      *handlers.TemplatesHandler
	Assistant      *handlers.AssistantHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/mfa/verify", cfg.Auth.VerifyMFA)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/mfa/enable", cfg.Auth.EnableMFA)

	proposals := app.Group("/proposals", cfg.AuthMiddleware.Handle)
	proposals.Get("", cfg.Proposals.ListProposals)
	proposals.Post("", cfg.Proposals.CreateProposal)
	proposals.Get("/:id", cfg.Proposals.GetProposal)
	proposals.Patch("/:id", cfg.Proposals.UpdateProposal)
	proposals.Post("/:id/status", cfg.Proposals.ChangeStatus)
	proposals.Post("/:id/share", cfg.Proposals.Share)
	proposals.Get("/:id/invitations", cfg.Proposals.ListInvitations)
	proposals.Delete("/:id/team/:email", cfg.Proposals.RevokeAccess)

	invitations := app.Group("/invitations", cfg.AuthMiddleware.Handle)
	invitations.Post("/:id/accept", cfg.Proposals.AcceptInvitation)

	templates := app.Group("/templates", cfg.AuthMiddleware.Handle)
	templates.Get("", cfg.Templates.ListTemplates)
	templates.Get("/:id", cfg.Templates.GetTemplate)

	assistant := app.Group("/assistant", cfg.AuthMiddleware.Handle)
	assistant.Post("/draft", cfg.Assistant.Draft)
	assistant.Post("/summarize", cfg.Assistant.Summarize)
	assistant.Post("/compliance", cfg.Assistant.ComplianceCheck)
	assistant.Post("/next-action", cfg.Assistant.NextBestAction)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Users.ListUsers)
	admin.Post("/users", cfg.Users.CreateUser)
	admin.Get("/logs", cfg.Users.ListAuditLogs)
}
