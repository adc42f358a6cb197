package repository // repository defines data access for the seat inventory

import (
	"context"
	"database/sql"

	"campus-table/internal/model"
)

// SeatRepo provides methods to work with the static seat inventory of a
// restaurant. Seats are created by the seeding utility and never change
// afterwards except by administrative reseeding.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts multiple seats in a single statement.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (restaurant_id, code, is_private_room, x_position, y_position) VALUES `
	args := make([]interface{}, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, s.RestaurantID, s.Code, s.IsPrivateRoom, s.XPosition, s.YPosition)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// ListByRestaurant retrieves all seats of a restaurant ordered by id.
// The id ordering matches insertion order, which keeps availability
// snapshots stable across the seats of a single response.
func (r *SeatRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Seat, error) {
	const q = `SELECT id, restaurant_id, code, is_private_room, x_position, y_position
	           FROM seats
	           WHERE restaurant_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.Code, &s.IsPrivateRoom, &s.XPosition, &s.YPosition); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByRestaurant removes the whole inventory of a restaurant.
// Reseeding deletes and recreates rather than editing in place.
func (r *SeatRepo) DeleteByRestaurant(ctx context.Context, restaurantID uint64) error {
	const q = `DELETE FROM seats WHERE restaurant_id = ?`
	_, err := r.db.ExecContext(ctx, q, restaurantID)
	return err
}
