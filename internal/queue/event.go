// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried in the envelope discriminator.
const (
    KindBookingConfirmed = "booking.confirmed"
    KindOrderPlaced      = "order.placed"
)

// Envelope wraps every message on the activity queue so the consumer can
// dispatch on Kind without guessing the payload shape.
type Envelope struct {
    Kind    string `json:"kind"`
    Payload []byte `json:"payload"`
}

// BookingConfirmedEvent is published when a seat booking is successfully
// confirmed. It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID      uint64   `json:"booking_id"`
    UserID         uint64   `json:"user_id,omitempty"`
    GuestSessionID uint64   `json:"guest_session_id,omitempty"`
    RestaurantID   uint64   `json:"restaurant_id"`
    RestaurantName string   `json:"restaurant_name"`
    StartTime      string   `json:"start_time"`
    EndTime        string   `json:"end_time"`
    SeatCodes      []string `json:"seats"`
    ConfirmedAt    string   `json:"confirmed_at"`
}

// OrderPlacedEvent is published when a food order is accepted.
type OrderPlacedEvent struct {
    OrderID        uint64  `json:"order_id"`
    UserID         uint64  `json:"user_id,omitempty"`
    GuestSessionID uint64  `json:"guest_session_id,omitempty"`
    RestaurantID   uint64  `json:"restaurant_id"`
    RestaurantName string  `json:"restaurant_name"`
    ItemCount      int     `json:"item_count"`
    TotalAmount    float64 `json:"total_amount"`
    PaymentMethod  string  `json:"payment_method"`
    PlacedAt       string  `json:"placed_at"`
}
