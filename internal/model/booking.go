package model

import "time"

// Booking statuses.  Only confirmed bookings participate in conflict
// detection and occupancy display.
const (
    BookingPending   = "pending"
    BookingConfirmed = "confirmed"
    BookingCancelled = "cancelled"
    BookingCompleted = "completed"
)

// Booking records a table reservation at a restaurant over the
// half-open window [StartTime, EndTime).  The seats of a booking are
// stored as raw seat codes in booking_seats; a code may or may not
// correspond to a Seat row, since clients can submit generated
// identifiers alongside inventory seats.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – registered user who booked, if any.
//  GuestSessionID – guest session that booked, if any.
//  RestaurantID   – restaurant being booked.
//  StartTime      – inclusive start of the window (UTC).
//  EndTime        – exclusive end of the window (UTC).
//  Status         – one of the Booking* constants.
//  CustomerName   – name supplied at booking time.
//  CustomerPhone  – phone supplied at booking time.
//  PaymentMethod  – declared payment method (cash, bkash, nagad, card).
//  TotalAmount    – declared amount in taka.
//  SeatCodes      – seat codes reserved under this booking.
//  CreatedAt      – creation timestamp.
type Booking struct {
    ID             uint64     // bookings.id
    UserID         *uint64    // bookings.user_id (nullable)
    GuestSessionID *uint64    // bookings.guest_session_id (nullable)
    RestaurantID   uint64     // bookings.restaurant_id
    StartTime      time.Time  // bookings.start_time
    EndTime        time.Time  // bookings.end_time
    Status         string     // bookings.status
    CustomerName   string     // bookings.customer_name
    CustomerPhone  string     // bookings.customer_phone
    PaymentMethod  string     // bookings.payment_method
    TotalAmount    float64    // bookings.total_amount
    SeatCodes      []string   // booking_seats.seat_code rows
    CreatedAt      time.Time  // bookings.created_at
}
