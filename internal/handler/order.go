package handler

import (
    "context"
    "errors"
    "fmt"
    "math/rand"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "campus-table/internal/model"
    "campus-table/internal/queue"
    "campus-table/internal/repository"
    queue_publisher "campus-table/internal/service"
)

// OrderHandler creates orders and serves order history.  Order creation
// writes the order, its items and the buyer's reward points in one
// transaction; prices always come from the menu, never from the client.
type OrderHandler struct {
    Orders      *repository.OrderRepo
    Menus       *repository.MenuRepo
    Users       *repository.UserRepo
    Guests      *repository.GuestRepo
    Restaurants *repository.RestaurantRepo
}

func NewOrderHandler(o *repository.OrderRepo, m *repository.MenuRepo, u *repository.UserRepo, g *repository.GuestRepo, r *repository.RestaurantRepo) *OrderHandler {
    if o == nil || m == nil || u == nil || g == nil || r == nil {
        panic("nil repository passed to NewOrderHandler")
    }
    return &OrderHandler{Orders: o, Menus: m, Users: u, Guests: g, Restaurants: r}
}

// deliveryFee is charged on every order except cash-on-delivery ones.
const deliveryFee = 50.0

var riderNames = []string{
    "Rakib Hasan", "Sumon Mia", "Jahid Islam", "Arif Hossain",
    "Mehedi Hasan", "Shakil Ahmed", "Nayeem Khan", "Rubel Sheikh",
}

// assignRider picks a random rider name and generates a plausible
// Bangladesh mobile number for them.
func assignRider() (string, string) {
    name := riderNames[rand.Intn(len(riderNames))]
    phone := fmt.Sprintf("01%d%08d", 3+rand.Intn(7), rand.Intn(100000000))
    return name, phone
}

type orderItemReq struct {
    MenuItemID uint64 `json:"menu_item_id"`
    Quantity   uint32 `json:"quantity"`
}

type createOrderReq struct {
    UserID              *uint64           `json:"user_id"`
    GuestID             *uint64           `json:"guest_id"`
    RestaurantID        uint64            `json:"restaurant_id"`
    Items               []orderItemReq    `json:"items"`
    PaymentMethod       string            `json:"payment_method"`
    DiscountAmount      float64           `json:"discount_amount"`
    DeliveryContact     map[string]string `json:"delivery_contact"`
    SpecialInstructions string            `json:"special_instructions"`
    BookingID           *uint64           `json:"booking_id"`
}

// CreateOrder handles POST /v1/orders.  The subtotal is computed from
// current menu prices, the delivery fee is waived for cash payments,
// and registered users earn one reward point per 100 taka of the
// final total.  Order, items and points commit together or not at all.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
    var req createOrderReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if (req.UserID == nil) == (req.GuestID == nil) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of user_id or guest_id is required"})
    }
    if req.RestaurantID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
    }
    if len(req.Items) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "items is required"})
    }
    method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
    switch method {
    case "cash", "bkash", "nagad", "card":
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment method"})
    }
    // merge duplicate menu items and reject zero quantities
    qty := make(map[uint64]uint32)
    ids := make([]uint64, 0, len(req.Items))
    for _, it := range req.Items {
        if it.MenuItemID == 0 || it.Quantity == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "items must have menu_item_id and positive quantity"})
        }
        if _, ok := qty[it.MenuItemID]; !ok {
            ids = append(ids, it.MenuItemID)
        }
        qty[it.MenuItemID] += it.Quantity
    }
    if req.DiscountAmount < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_amount cannot be negative"})
    }

    ctx := c.Request().Context()
    rest, err := h.Restaurants.GetByID(ctx, req.RestaurantID)
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

    prices, err := h.Menus.GetPrices(ctx, ids)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu prices"})
    }
    subtotal := 0.0
    items := make([]model.OrderItem, 0, len(ids))
    for _, id := range ids {
        price, ok := prices[id]
        if !ok {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found", "menu_item_id": id})
        }
        subtotal += price * float64(qty[id])
        items = append(items, model.OrderItem{MenuItemID: id, Quantity: qty[id], Price: price})
    }

    fee := deliveryFee
    if method == "cash" {
        fee = 0
    }
    total := subtotal - req.DiscountAmount + fee
    if total < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount exceeds order total"})
    }
    paymentStatus := model.PaymentPaid
    if method == "cash" {
        paymentStatus = model.PaymentPending
    }
    riderName, riderPhone := assignRider()

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
    order := &model.Order{
        UserID:              req.UserID,
        GuestSessionID:      req.GuestID,
        RestaurantID:        req.RestaurantID,
        Subtotal:            subtotal,
        DiscountAmount:      req.DiscountAmount,
        DeliveryFee:         fee,
        TotalAmount:         total,
        PaymentMethod:       method,
        PaymentStatus:       paymentStatus,
        Status:              model.OrderConfirmed,
        DeliveryContact:     req.DeliveryContact,
        RiderName:           riderName,
        RiderPhone:          riderPhone,
        SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
        BookingID:           req.BookingID,
    }
    if err := h.Orders.CreateTx(ctx, tx, order); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
    }
    for i := range items {
        items[i].OrderID = order.ID
    }
    if err := h.Orders.CreateItemsBulkTx(ctx, tx, items); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order items"})
    }
    // one reward point per 100 taka, registered users only
    points := int64(total / 100)
    if req.UserID != nil && points > 0 {
        if err := h.Users.AddRewardPointsTx(ctx, tx, *req.UserID, points); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to award points"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    ev := queue.OrderPlacedEvent{
        OrderID:        order.ID,
        RestaurantID:   req.RestaurantID,
        RestaurantName: rest.Name,
        ItemCount:      len(items),
        TotalAmount:    total,
        PaymentMethod:  method,
        PlacedAt:       time.Now().UTC().Format(time.RFC3339),
    }
    if req.UserID != nil {
        ev.UserID = *req.UserID
    } else {
        ev.GuestSessionID = *req.GuestID
    }
    go func() { _ = queue_publisher.PublishOrderPlaced(context.Background(), ev) }()

    resp := echo.Map{
        "order_id":       order.ID,
        "status":         order.Status,
        "payment_status": order.PaymentStatus,
        "subtotal":       subtotal,
        "delivery_fee":   fee,
        "total_amount":   total,
        "rider_name":     riderName,
        "rider_phone":    riderPhone,
    }
    if req.UserID != nil {
        resp["reward_points_earned"] = points
    }
    return c.JSON(http.StatusCreated, resp)
}

// OrderHistory handles GET /v1/orders/history.  Exactly one of user_id
// or guest_id selects whose orders to list, newest first.
func (h *OrderHandler) OrderHistory(c echo.Context) error {
    userID, okU := queryID(c, "user_id")
    guestID, okG := queryID(c, "guest_id")
    if !okU || !okG {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id or guest_id"})
    }
    if (userID == 0) == (guestID == 0) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of user_id or guest_id is required"})
    }
    ctx := c.Request().Context()
    var items []model.Order
    var err error
    if userID != 0 {
        items, err = h.Orders.ListByUser(ctx, userID)
    } else {
        items, err = h.Orders.ListByGuest(ctx, guestID)
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetOrder handles GET /v1/orders/:id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }
    order, err := h.Orders.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrOrderNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": order})
}
