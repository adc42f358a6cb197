package router

import (
    "github.com/labstack/echo/v4"

    "campus-table/internal/handler"
)

// RegisterCustomer registers the transactional endpoints: bookings,
// payment validation, orders, reviews and profile updates.  The caller
// identifies themselves in the request body or query (user_id or
// guest_id), so these routes carry no JWT middleware; handlers verify
// that the referenced identity exists before writing.
func RegisterCustomer(e *echo.Echo, bk *handler.BookingHandler, pay *handler.PaymentHandler, ord *handler.OrderHandler, rev *handler.ReviewHandler, usr *handler.UserHandler) {
    g := e.Group("/v1")

    // ---- Bookings ----
    g.POST("/restaurants/:id/book", bk.CreateBooking)
    g.GET("/bookings", bk.ListBookings)

    // ---- Payment validation ----
    g.POST("/payment/validate", pay.Validate)

    // ---- Orders ----
    g.POST("/orders", ord.CreateOrder)
    g.GET("/orders/history", ord.OrderHistory)
    g.GET("/orders/:id", ord.GetOrder)
    g.POST("/orders/:id/review", rev.CreateReview)

    // ---- Profile ----
    g.POST("/user/areas", usr.UpdateAreas)
    g.GET("/user/history", usr.History)
}
