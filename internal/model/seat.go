package model

import "time"

// Seat describes a physical seat inside a restaurant.  Seats are
// uniquely identified by their restaurant and code (e.g. "T3S2").
// The x/y positions place the seat on the client's layout canvas
// and have no effect on booking logic.  Seats are immutable after
// creation except by administrative reseeding.
//
// Fields:
//  ID            – primary key identifier.
//  RestaurantID  – restaurant to which this seat belongs.
//  Code          – seat code, unique within the restaurant.
//  IsPrivateRoom – whether the seat sits inside a private room.
//  XPosition     – horizontal layout position.
//  YPosition     – vertical layout position.
type Seat struct {
    ID            uint64 // seats.id
    RestaurantID  uint64 // seats.restaurant_id
    Code          string // seats.code
    IsPrivateRoom bool   // seats.is_private_room
    XPosition     int32  // seats.x_position
    YPosition     int32  // seats.y_position
}

// OccupiedSeat marks a seat as taken by a walk-in guest until the
// recorded expiry.  A seat is occupied at time T iff an OccupiedSeat
// row with occupied_until > T exists.  Rows are never deleted by the
// server; expiry is evaluated lazily at read time.  Multiple rows may
// exist per seat.
//
// Fields:
//  ID            – primary key identifier.
//  SeatID        – seat being occupied.
//  OccupiedUntil – instant after which the seat is free again.
type OccupiedSeat struct {
    ID            uint64    // occupied_seats.id
    SeatID        uint64    // occupied_seats.seat_id
    OccupiedUntil time.Time // occupied_seats.occupied_until (UTC)
}
