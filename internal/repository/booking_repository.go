package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"campus-table/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their seats.
// A booking reserves a set of seat codes at a restaurant over the
// half-open window [start_time, end_time). Seat codes are stored as raw
// strings in booking_seats and deliberately carry no foreign key to the
// seats table: clients may book generated seat identifiers that have no
// inventory row, and conflict detection compares identifiers, not rows.
// All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingRecord mirrors the schema of the bookings table. It is used by
// the repository when constructing or scanning rows.
type BookingRecord struct {
	ID             uint64
	UserID         *uint64
	GuestSessionID *uint64
	RestaurantID   uint64
	StartTime      time.Time
	EndTime        time.Time
	Status         string
	CustomerName   string
	CustomerPhone  string
	PaymentMethod  string
	TotalAmount    float64
	CreatedAt      time.Time
}

// HasConflictTx reports whether any confirmed booking of the restaurant
// shares at least one of the given seat codes and overlaps the window
// [start, end). Overlap uses half-open semantics: existing.start < end
// AND existing.end > start, so back-to-back windows touching at a
// boundary instant never conflict. The check runs inside the caller's
// transaction; the caller must have locked the restaurant row first so
// that check-then-insert sequences serialize.
func (r *BookingRepo) HasConflictTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, seatCodes []string, start, end time.Time) (bool, error) {
	if len(seatCodes) == 0 {
		return false, nil
	}
	placeholders := strings.Repeat("?,", len(seatCodes))
	placeholders = placeholders[:len(placeholders)-1]
	q := `SELECT COUNT(*)
	      FROM bookings b
	      JOIN booking_seats bs ON bs.booking_id = b.id
	      WHERE b.restaurant_id = ?
	        AND b.status = 'confirmed'
	        AND b.start_time < ?
	        AND b.end_time > ?
	        AND bs.seat_code IN (` + placeholders + `)`
	args := make([]interface{}, 0, len(seatCodes)+3)
	args = append(args, restaurantID, end.UTC(), start.UTC())
	for _, code := range seatCodes {
		args = append(args, code)
	}
	var n int64
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction. It populates the generated ID and CreatedAt on the
// provided record. The caller must commit or rollback the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
	const q = `INSERT INTO bookings
		(user_id, guest_session_id, restaurant_id, start_time, end_time, status,
		 customer_name, customer_phone, payment_method, total_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		b.UserID, b.GuestSessionID, b.RestaurantID,
		b.StartTime.UTC(), b.EndTime.UTC(), b.Status,
		b.CustomerName, b.CustomerPhone, b.PaymentMethod, b.TotalAmount,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to populate the DB-assigned creation timestamp
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// CreateSeatsBulkTx inserts the booking's seat codes in a single
// statement. Passing an empty slice has no effect and returns nil.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatCodes []string) error {
	if len(seatCodes) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, seat_code) VALUES `
	args := make([]interface{}, 0, len(seatCodes)*2)
	for i, code := range seatCodes {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, bookingID, code)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// BookedSeatCodes returns the distinct seat codes of confirmed bookings
// whose window contains the given instant (start_time <= at < end_time).
// The availability view marks these as is_booked; markers from
// occupied_seats are reported separately.
func (r *BookingRepo) BookedSeatCodes(ctx context.Context, restaurantID uint64, at time.Time) (map[string]bool, error) {
	const q = `SELECT DISTINCT bs.seat_code
	           FROM bookings b
	           JOIN booking_seats bs ON bs.booking_id = b.id
	           WHERE b.restaurant_id = ?
	             AND b.status = 'confirmed'
	             AND b.start_time <= ?
	             AND b.end_time > ?`
	rows, err := r.db.QueryContext(ctx, q, restaurantID, at.UTC(), at.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		booked[code] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return booked, nil
}

// ListByUser returns all bookings of a user, newest first, with their
// seat codes populated. Seat codes for all bookings are fetched in a
// single query rather than one per booking.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT id, user_id, guest_session_id, restaurant_id, start_time, end_time,
	                  status, customer_name, customer_phone, payment_method, total_amount, created_at
	           FROM bookings
	           WHERE user_id = ?
	           ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var b model.Booking
		var uid, gid sql.NullInt64
		if err := rows.Scan(
			&b.ID, &uid, &gid, &b.RestaurantID, &b.StartTime, &b.EndTime,
			&b.Status, &b.CustomerName, &b.CustomerPhone, &b.PaymentMethod,
			&b.TotalAmount, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		if uid.Valid {
			v := uint64(uid.Int64)
			b.UserID = &v
		}
		if gid.Valid {
			v := uint64(gid.Int64)
			b.GuestSessionID = &v
		}
		b.SeatCodes = []string{}
		index[b.ID] = len(bookings)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}
	ids := make([]interface{}, 0, len(bookings))
	placeholders := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		placeholders = append(placeholders, "?")
	}
	seatQ := `SELECT booking_id, seat_code FROM booking_seats
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, id`
	srows, err := r.db.QueryContext(ctx, seatQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bid uint64
		var code string
		if err := srows.Scan(&bid, &code); err != nil {
			return nil, err
		}
		if idx, ok := index[bid]; ok {
			bookings[idx].SeatCodes = append(bookings[idx].SeatCodes, code)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
