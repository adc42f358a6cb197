package repository

import (
	"context"
	"database/sql"

	"campus-table/internal/model"
)

// ReviewRepo provides data access for order reviews. A user may review
// a given order once; the table enforces this with a unique key on
// (user_id, order_id) and creation re-checks it explicitly so the error
// surfaced is ErrDuplicateReview rather than a raw driver error.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the given DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// ExistsForOrderTx reports whether the user already reviewed the order,
// inside the caller's transaction.
func (r *ReviewRepo) ExistsForOrderTx(ctx context.Context, tx *sql.Tx, userID, orderID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM reviews WHERE user_id = ? AND order_id = ?`
	var n int64
	if err := tx.QueryRowContext(ctx, q, userID, orderID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a review within the caller's transaction and
// populates the generated ID. The caller recomputes the restaurant
// rating in the same transaction.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rev *model.Review) error {
	const q = `INSERT INTO reviews (user_id, restaurant_id, order_id, rating, text) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, rev.UserID, rev.RestaurantID, rev.OrderID, rev.Rating, rev.Text)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return nil
}

// ListByUser returns a user's reviews, newest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	const q = `SELECT id, user_id, restaurant_id, order_id, rating, text, created_at
	           FROM reviews WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.RestaurantID, &rev.OrderID, &rev.Rating, &rev.Text, &rev.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
