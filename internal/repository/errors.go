// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a seat
// conflict maps to HTTP 409, a missing restaurant to 404, and so on.
package repository

import "errors"

// ErrSeatConflict is returned when a requested booking window overlaps a
// confirmed booking that shares at least one seat code. It is a
// definitive rejection, not a transient condition; callers should pick
// different seats or a different window rather than retry.
var ErrSeatConflict = errors.New("seats already booked for this time")

// ErrRestaurantNotFound is returned when a restaurant lookup yields no rows.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrUserNotFound is returned when a user profile lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrGuestNotFound is returned when a guest session lookup yields no rows.
var ErrGuestNotFound = errors.New("guest session not found")

// ErrMenuItemNotFound is returned when a menu item lookup yields no rows.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ErrOrderNotFound is returned when an order lookup yields no rows.
var ErrOrderNotFound = errors.New("order not found")

// ErrDuplicateReview is returned when a user attempts a second review of
// the same order.
var ErrDuplicateReview = errors.New("review already exists for this order")
