package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "campus-table/internal/repository"
)

// AdminHandler serves the dashboard.  Routes using it must be wrapped
// in JWTAuth plus RequireRole("ADMIN"); the handler itself does not
// re-check the role.
type AdminHandler struct {
    Stats *repository.StatsRepo
}

func NewAdminHandler(s *repository.StatsRepo) *AdminHandler {
    if s == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{Stats: s}
}

// recentFeedLimit bounds the latest orders/bookings/reviews lists.
const recentFeedLimit = 10

// Dashboard handles GET /v1/admin/dashboard.  It aggregates platform
// totals, per-restaurant and per-user statistics and the most recent
// activity in a single response.
func (h *AdminHandler) Dashboard(c echo.Context) error {
    ctx := c.Request().Context()

    totals, err := h.Stats.Totals(ctx, time.Now().UTC())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load totals"})
    }
    restaurants, err := h.Stats.RestaurantStats(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant stats"})
    }
    users, err := h.Stats.UserStats(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user stats"})
    }
    orders, err := h.Stats.LatestOrders(ctx, recentFeedLimit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load latest orders"})
    }
    bookings, err := h.Stats.LatestBookings(ctx, recentFeedLimit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load latest bookings"})
    }
    reviews, err := h.Stats.LatestReviews(ctx, recentFeedLimit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load latest reviews"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "totals":           totals,
        "restaurant_stats": restaurants,
        "user_stats":       users,
        "latest_orders":    orders,
        "latest_bookings":  bookings,
        "latest_reviews":   reviews,
        "generated_at":     time.Now().UTC().Format(time.RFC3339),
    })
}
