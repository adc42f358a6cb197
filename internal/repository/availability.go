package repository

import (
	"context"
	"time"
)

// SeatAvailability is the per-seat availability snapshot returned to the
// seat-map endpoint. IsOccupied and IsBooked are independent flags:
// IsOccupied reflects unexpired walk-in markers, IsBooked reflects a
// confirmed booking whose window contains the query instant. A seat can
// carry either flag without the other.
type SeatAvailability struct {
	ID            uint64 `json:"id"`
	Code          string `json:"code"`
	IsPrivateRoom bool   `json:"is_private_room"`
	XPosition     int32  `json:"x_position"`
	YPosition     int32  `json:"y_position"`
	IsOccupied    bool   `json:"is_occupied"`
	IsBooked      bool   `json:"is_booked"`
}

// AvailabilityBuilder combines the seat inventory, occupancy markers and
// confirmed bookings into availability snapshots. It issues exactly
// three queries per snapshot; relationships are resolved explicitly
// rather than per seat.
type AvailabilityBuilder struct {
	seats    *SeatRepo
	occupied *OccupiedSeatRepo
	bookings *BookingRepo
}

// NewAvailabilityBuilder constructs an AvailabilityBuilder over the given
// repositories.
func NewAvailabilityBuilder(seats *SeatRepo, occupied *OccupiedSeatRepo, bookings *BookingRepo) *AvailabilityBuilder {
	return &AvailabilityBuilder{seats: seats, occupied: occupied, bookings: bookings}
}

// Snapshot returns the availability of every inventory seat of the
// restaurant at the given instant. Seats are ordered by id (insertion
// order), so the order is stable within a single call. Booked flags are
// matched by seat code; booking seat codes with no inventory row simply
// do not appear in the snapshot.
func (a *AvailabilityBuilder) Snapshot(ctx context.Context, restaurantID uint64, at time.Time) ([]SeatAvailability, error) {
	seats, err := a.seats.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	occupied, err := a.occupied.OccupiedSeatIDs(ctx, restaurantID, at)
	if err != nil {
		return nil, err
	}
	booked, err := a.bookings.BookedSeatCodes(ctx, restaurantID, at)
	if err != nil {
		return nil, err
	}
	out := make([]SeatAvailability, 0, len(seats))
	for _, s := range seats {
		out = append(out, SeatAvailability{
			ID:            s.ID,
			Code:          s.Code,
			IsPrivateRoom: s.IsPrivateRoom,
			XPosition:     s.XPosition,
			YPosition:     s.YPosition,
			IsOccupied:    occupied[s.ID],
			IsBooked:      booked[s.Code],
		})
	}
	return out, nil
}
