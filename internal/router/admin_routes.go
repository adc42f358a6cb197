package router

import (
    "github.com/labstack/echo/v4"

    "campus-table/internal/handler"
    "campus-table/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.  All
// routes require a valid JWT carrying the ADMIN role, issued by the
// admin login endpoint.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )
    g.GET("/dashboard", a.Dashboard)
}
