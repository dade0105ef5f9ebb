package router // registers the portal's HTTP routes

import (
	"github.com/labstack/echo/v4"

	"github.com/munihub/civic-portal/internal/handler"
	"github.com/munihub/civic-portal/internal/middleware"
	"github.com/munihub/civic-portal/internal/model"
)

// RegisterRoutes registers routes that require no authentication
// beyond what the load balancer needs: the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session endpoints.  Register, login, refresh
// and logout live under /v1/auth without JWT middleware; /v1/me is
// protected and open to both roles.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token or a refresh_token body, so
	// it stays outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCitizen))
	auth.GET("/me", a.Me)
}

// RegisterPublic wires the unauthenticated browse endpoints.  These
// carry the Redis response cache and the rate limiter; everything else
// gets the limiter only.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	g.GET("/items", p.ListItems)
	g.GET("/items/:slug", p.GetItem)
}

// RegisterCitizen wires the authenticated citizen surface:
// registrations and attendance intents.
func RegisterCitizen(e *echo.Echo, r *handler.RegistrationHandler, i *handler.IntentHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCitizen, model.RoleAdmin))

	g.POST("/registrations", r.Create)
	g.GET("/registrations", r.List)
	g.GET("/registrations/:id", r.Get)
	g.DELETE("/registrations/:id", r.Cancel)

	g.PUT("/events/:id/intent", i.Create)
	g.DELETE("/events/:id/intent", i.Delete)
	g.GET("/events/:id/intent", i.State)
}

// RegisterAdmin wires the staff-only content management surface.
func RegisterAdmin(e *echo.Echo, a *handler.AdminItemHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("/items", a.CreateItem)
	g.PATCH("/items/:id/capacity", a.UpdateCapacity)
	g.POST("/items/:id/transition", a.Transition)
	g.POST("/programs/:id/highlight", a.SetHighlight)
}
