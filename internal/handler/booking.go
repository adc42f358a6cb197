package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "campus-table/internal/model"
    "campus-table/internal/queue"
    "campus-table/internal/repository"
    queue_publisher "campus-table/internal/service"
)

// BookingHandler creates and lists seat bookings.  Booking creation is
// the one write path with a real race: two requests may ask for
// overlapping windows on the same seats.  The handler runs the conflict
// check and the inserts in a single transaction that first locks the
// restaurant row, so concurrent attempts serialize and exactly one wins.
type BookingHandler struct {
    Restaurants *repository.RestaurantRepo
    Bookings    *repository.BookingRepo
    Users       *repository.UserRepo
    Guests      *repository.GuestRepo
}

func NewBookingHandler(r *repository.RestaurantRepo, b *repository.BookingRepo, u *repository.UserRepo, g *repository.GuestRepo) *BookingHandler {
    if r == nil || b == nil || u == nil || g == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{Restaurants: r, Bookings: b, Users: u, Guests: g}
}

type createBookingReq struct {
    UserID        *uint64  `json:"user_id"`
    GuestID       *uint64  `json:"guest_id"`
    SeatIDs       []string `json:"seat_ids"`
    StartTime     string   `json:"start_time"`
    EndTime       string   `json:"end_time"`
    CustomerName  string   `json:"customer_name"`
    CustomerPhone string   `json:"customer_phone"`
    PaymentMethod string   `json:"payment_method"`
    TotalAmount   float64  `json:"total_amount"`
}

// CreateBooking handles POST /v1/restaurants/:id/book.  The requested
// seats are raw codes and are not required to resolve to seat inventory
// rows.  The window is half-open [start, end): a booking ending exactly
// when another starts never conflicts.  Returns 201 with the booking ID,
// 409 when any seat overlaps a confirmed booking, 400 on validation
// failures and 404 when the restaurant or identity does not exist.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    restaurantID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if (req.UserID == nil) == (req.GuestID == nil) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of user_id or guest_id is required"})
    }
    // deduplicate seat codes; blank entries are dropped
    codes := make([]string, 0, len(req.SeatIDs))
    seen := make(map[string]struct{})
    for _, raw := range req.SeatIDs {
        code := strings.TrimSpace(raw)
        if code == "" {
            continue
        }
        if _, ok := seen[code]; !ok {
            seen[code] = struct{}{}
            codes = append(codes, code)
        }
    }
    if len(codes) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
    }
    start, err := time.Parse(time.RFC3339, req.StartTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
    }
    end, err := time.Parse(time.RFC3339, req.EndTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC3339"})
    }
    start, end = start.UTC(), end.UTC()
    if !start.Before(end) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be before end_time"})
    }

    ctx := c.Request().Context()
    rest, err := h.Restaurants.GetByID(ctx, restaurantID)
    if err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
    }
    if req.UserID != nil {
        if _, err := h.Users.GetByID(ctx, *req.UserID); err != nil {
            if errors.Is(err, repository.ErrUserNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
        }
    } else {
        if _, err := h.Guests.GetByID(ctx, *req.GuestID); err != nil {
            if errors.Is(err, repository.ErrGuestNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "guest session not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load guest session"})
        }
    }

    tx, err := h.Bookings.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    // Serialize concurrent bookings for the same restaurant so the
    // conflict check and the insert form one atomic unit.
    if err := h.Restaurants.LockTx(ctx, tx, restaurantID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to lock restaurant"})
    }
    conflict, err := h.Bookings.HasConflictTx(ctx, tx, restaurantID, codes, start, end)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check conflicts"})
    }
    if conflict {
        return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSeatConflict.Error()})
    }
    rec := &repository.BookingRecord{
        UserID:         req.UserID,
        GuestSessionID: req.GuestID,
        RestaurantID:   restaurantID,
        StartTime:      start,
        EndTime:        end,
        Status:         model.BookingConfirmed,
        CustomerName:   strings.TrimSpace(req.CustomerName),
        CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
        PaymentMethod:  strings.ToLower(strings.TrimSpace(req.PaymentMethod)),
        TotalAmount:    req.TotalAmount,
    }
    if err := h.Bookings.CreateTx(ctx, tx, rec); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
    }
    if err := h.Bookings.CreateSeatsBulkTx(ctx, tx, rec.ID, codes); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking seats"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    ev := queue.BookingConfirmedEvent{
        BookingID:      rec.ID,
        RestaurantID:   restaurantID,
        RestaurantName: rest.Name,
        StartTime:      start.Format(time.RFC3339),
        EndTime:        end.Format(time.RFC3339),
        SeatCodes:      codes,
        ConfirmedAt:    rec.CreatedAt.UTC().Format(time.RFC3339),
    }
    if req.UserID != nil {
        ev.UserID = *req.UserID
    } else {
        ev.GuestSessionID = *req.GuestID
    }
    // Fire and forget; a broker outage must not fail the booking.
    go func() { _ = queue_publisher.PublishBookingConfirmed(context.Background(), ev) }()

    return c.JSON(http.StatusCreated, echo.Map{
        "booking_id": rec.ID,
        "status":     rec.Status,
        "seat_ids":   codes,
        "start_time": start.Format(time.RFC3339),
        "end_time":   end.Format(time.RFC3339),
    })
}

// ListBookings handles GET /v1/bookings?user_id=.  Bookings are
// returned newest first with their seat codes.
func (h *BookingHandler) ListBookings(c echo.Context) error {
    userID, ok := queryID(c, "user_id")
    if !ok || userID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
    }
    items, err := h.Bookings.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
