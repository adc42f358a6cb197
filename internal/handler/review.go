package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "campus-table/internal/model"
    "campus-table/internal/repository"
)

// ReviewHandler creates reviews for delivered orders.  Creating a
// review and recomputing the restaurant's average rating happen in the
// same transaction so the denormalized rating never drifts.
type ReviewHandler struct {
    Orders      *repository.OrderRepo
    Reviews     *repository.ReviewRepo
    Restaurants *repository.RestaurantRepo
}

func NewReviewHandler(o *repository.OrderRepo, rev *repository.ReviewRepo, r *repository.RestaurantRepo) *ReviewHandler {
    if o == nil || rev == nil || r == nil {
        panic("nil repository passed to NewReviewHandler")
    }
    return &ReviewHandler{Orders: o, Reviews: rev, Restaurants: r}
}

type createReviewReq struct {
    UserID uint64 `json:"user_id"`
    Rating uint8  `json:"rating"`
    Text   string `json:"text"`
}

// CreateReview handles POST /v1/orders/:id/review.  Only the registered
// user who placed the order may review it, only after delivery, and
// only once.  Returns 201, 400 for undelivered orders or bad ratings,
// 403 for guest orders or another user's order, 404 for unknown orders
// and 409 for duplicates.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
    orderID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }
    var req createReviewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.UserID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
    }
    if req.Rating < 1 || req.Rating > 5 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
    }

    ctx := c.Request().Context()
    order, err := h.Orders.GetByID(ctx, orderID)
    if err != nil {
        if errors.Is(err, repository.ErrOrderNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
    }
    if order.UserID == nil || *order.UserID != req.UserID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "only the ordering user can review"})
    }
    if order.Status != model.OrderDelivered {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "only delivered orders can be reviewed"})
    }

    tx, err := h.Orders.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    exists, err := h.Reviews.ExistsForOrderTx(ctx, tx, req.UserID, orderID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check existing review"})
    }
    if exists {
        return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrDuplicateReview.Error()})
    }
    rev := &model.Review{
        UserID:       req.UserID,
        RestaurantID: order.RestaurantID,
        OrderID:      orderID,
        Rating:       req.Rating,
        Text:         strings.TrimSpace(req.Text),
    }
    if err := h.Reviews.CreateTx(ctx, tx, rev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
    }
    if err := h.Restaurants.UpdateRatingTx(ctx, tx, order.RestaurantID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update restaurant rating"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    return c.JSON(http.StatusCreated, echo.Map{
        "review_id": rev.ID,
        "rating":    rev.Rating,
    })
}
