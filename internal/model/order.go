package model

import "time"

// Order statuses.
const (
    OrderPending        = "pending"
    OrderConfirmed      = "confirmed"
    OrderPreparing      = "preparing"
    OrderReady          = "ready"
    OrderOutForDelivery = "out_for_delivery"
    OrderDelivered      = "delivered"
    OrderCancelled      = "cancelled"
)

// Payment statuses and methods.
const (
    PaymentPending  = "pending"
    PaymentPaid     = "paid"
    PaymentFailed   = "failed"
    PaymentRefunded = "refunded"
)

// Order is a food order placed by a user or guest.  All amounts are
// in taka.  The rider fields are assigned when the order is created.
//
// Fields:
//  ID                  – primary key identifier.
//  UserID              – registered user, if any.
//  GuestSessionID      – guest session, if any.
//  RestaurantID        – restaurant the order was placed with.
//  Subtotal            – sum of item prices times quantities.
//  DiscountAmount      – discount applied.
//  DeliveryFee         – delivery fee (waived for cash payments).
//  TotalAmount         – subtotal - discount + delivery fee.
//  PaymentMethod       – cash, bkash, nagad or card.
//  PaymentStatus       – one of the Payment* constants.
//  Status              – one of the Order* constants.
//  DeliveryContact     – phone/email/address for delivery, stored as JSON.
//  RiderName           – assigned delivery rider name.
//  RiderPhone          – assigned delivery rider phone.
//  SpecialInstructions – free-form instructions to the kitchen.
//  BookingID           – related seat booking, if ordered with one.
//  CreatedAt           – creation timestamp.
type Order struct {
    ID                  uint64            // orders.id
    UserID              *uint64           // orders.user_id (nullable)
    GuestSessionID      *uint64           // orders.guest_session_id (nullable)
    RestaurantID        uint64            // orders.restaurant_id
    Subtotal            float64           // orders.subtotal
    DiscountAmount      float64           // orders.discount_amount
    DeliveryFee         float64           // orders.delivery_fee
    TotalAmount         float64           // orders.total_amount
    PaymentMethod       string            // orders.payment_method
    PaymentStatus       string            // orders.payment_status
    Status              string            // orders.status
    DeliveryContact     map[string]string // orders.delivery_contact (JSON object)
    RiderName           string            // orders.rider_name
    RiderPhone          string            // orders.rider_phone
    SpecialInstructions string            // orders.special_instructions
    BookingID           *uint64           // orders.booking_id (nullable)
    CreatedAt           time.Time         // orders.created_at
}

// OrderItem is a single line of an order.  Price is the menu price at
// order time and is copied so later menu edits do not rewrite history.
type OrderItem struct {
    ID         uint64  // order_items.id
    OrderID    uint64  // order_items.order_id
    MenuItemID uint64  // order_items.menu_item_id
    Quantity   uint32  // order_items.quantity
    Price      float64 // order_items.price
}

// Review rates a delivered order.  One review per (user, order);
// restaurant average rating and review count are recomputed when a
// review is created.
type Review struct {
    ID           uint64    // reviews.id
    UserID       uint64    // reviews.user_id
    RestaurantID uint64    // reviews.restaurant_id
    OrderID      uint64    // reviews.order_id
    Rating       uint8     // reviews.rating (1..5)
    Text         string    // reviews.text
    CreatedAt    time.Time // reviews.created_at
}
