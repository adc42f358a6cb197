package repository

import (
	"context"
	"database/sql"
	"time"

	"campus-table/internal/model"
)

// OccupiedSeatRepo tracks walk-in occupancy markers. A marker makes its
// seat count as occupied until occupied_until; expiry is evaluated by
// timestamp comparison at read time, there is no background sweep.
// Markers are written only by the seeding utility, never by a customer
// request, and are independent of bookings: a seat can be marked
// occupied while booking-free and vice versa.
type OccupiedSeatRepo struct {
	db *sql.DB
}

// NewOccupiedSeatRepo constructs an OccupiedSeatRepo with the given DB handle.
func NewOccupiedSeatRepo(db *sql.DB) *OccupiedSeatRepo {
	return &OccupiedSeatRepo{db: db}
}

// Create inserts a single occupancy marker. On success the ID is populated.
func (r *OccupiedSeatRepo) Create(ctx context.Context, o *model.OccupiedSeat) error {
	const q = `INSERT INTO occupied_seats (seat_id, occupied_until) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, o.SeatID, o.OccupiedUntil.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// OccupiedSeatIDs returns the distinct seat IDs of a restaurant that have
// an unexpired marker at the given instant (occupied_until > at). Any
// unexpired row marks the seat occupied regardless of how many others
// have already lapsed.
func (r *OccupiedSeatRepo) OccupiedSeatIDs(ctx context.Context, restaurantID uint64, at time.Time) (map[uint64]bool, error) {
	const q = `SELECT DISTINCT os.seat_id
	           FROM occupied_seats os
	           JOIN seats s ON s.id = os.seat_id
	           WHERE s.restaurant_id = ? AND os.occupied_until > ?`
	rows, err := r.db.QueryContext(ctx, q, restaurantID, at.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make(map[uint64]bool)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		occupied[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return occupied, nil
}
