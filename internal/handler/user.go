package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "campus-table/internal/repository"
)

// UserHandler serves profile-scoped endpoints: preferred area updates
// and the combined activity history.
type UserHandler struct {
    Users    *repository.UserRepo
    Orders   *repository.OrderRepo
    Bookings *repository.BookingRepo
    Reviews  *repository.ReviewRepo
}

func NewUserHandler(u *repository.UserRepo, o *repository.OrderRepo, b *repository.BookingRepo, r *repository.ReviewRepo) *UserHandler {
    if u == nil || o == nil || b == nil || r == nil {
        panic("nil repository passed to NewUserHandler")
    }
    return &UserHandler{Users: u, Orders: o, Bookings: b, Reviews: r}
}

type updateAreasReq struct {
    UserID uint64   `json:"user_id"`
    Areas  []string `json:"areas"`
}

// UpdateAreas handles POST /v1/user/areas.  It replaces the user's
// preferred area list wholesale.
func (h *UserHandler) UpdateAreas(c echo.Context) error {
    var req updateAreasReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.UserID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
    }
    if err := h.Users.UpdatePreferredAreas(c.Request().Context(), req.UserID, req.Areas); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update areas"})
    }
    return c.JSON(http.StatusOK, echo.Map{"updated": true, "areas": req.Areas})
}

// History handles GET /v1/user/history?user_id=.  It returns the user's
// orders, bookings and reviews together with the current reward point
// balance, newest first within each list.
func (h *UserHandler) History(c echo.Context) error {
    userID, ok := queryID(c, "user_id")
    if !ok || userID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
    }
    ctx := c.Request().Context()
    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
    }
    orders, err := h.Orders.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
    }
    bookings, err := h.Bookings.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    reviews, err := h.Reviews.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user": echo.Map{
            "id":              u.ID,
            "email":           u.Email,
            "name":            u.Name,
            "reward_points":   u.RewardPoints,
            "preferred_areas": u.PreferredAreas,
        },
        "orders":   orders,
        "bookings": bookings,
        "reviews":  reviews,
    })
}
