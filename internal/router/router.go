package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // Echo web framework used for routing

    "campus-table/internal/handler" // handlers implementing business logic
)

// RegisterRoutes registers routes that do not require authentication and
// carry no middleware of their own.  Currently it exposes only the
// health check, mounted both at the root and under the API prefix so
// load balancers and versioned clients can both reach it.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
    e.GET("/v1/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under /v1/auth.
// Customer login is a plain email exchange, guest sessions are minted
// without credentials, and admin login checks the configured principal
// list.  None of these routes require an existing token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    g := e.Group("/v1/auth")
    g.POST("/login", a.Login)
    g.POST("/guest", a.GuestSession)
    g.POST("/admin", a.AdminLogin)
}

// RegisterBrowse registers the public read-only endpoints.  The caller
// supplies the response-cache middleware so browse traffic is served
// from Redis when possible; pass a pass-through middleware to disable
// caching.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1", cache)
    g.GET("/institutions", b.ListInstitutions)
    g.GET("/restaurants", b.ListRestaurants)
    g.GET("/restaurants/:id", b.GetRestaurant)
    g.GET("/restaurants/:id/menu", b.GetMenu)
    // Seat availability is time-sensitive; it still goes through the
    // cache middleware, whose short TTL bounds the staleness.
    g.GET("/restaurants/:id/seats", b.GetSeatAvailability)
}
