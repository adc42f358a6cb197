package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"campus-table/internal/model"
)

// OrderRepo provides CRUD operations for orders and their items.
// Order creation is transactional: the order row, its item rows and the
// reward-point credit must commit together or not at all.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new order within the scope of an existing
// transaction and populates the generated ID on the model.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	contact := o.DeliveryContact
	if contact == nil {
		contact = map[string]string{}
	}
	blob, err := json.Marshal(contact)
	if err != nil {
		return err
	}
	const q = `INSERT INTO orders
		(user_id, guest_session_id, restaurant_id, subtotal, discount_amount, delivery_fee,
		 total_amount, payment_method, payment_status, status, delivery_contact,
		 rider_name, rider_phone, special_instructions, booking_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		o.UserID, o.GuestSessionID, o.RestaurantID,
		o.Subtotal, o.DiscountAmount, o.DeliveryFee, o.TotalAmount,
		o.PaymentMethod, o.PaymentStatus, o.Status, string(blob),
		o.RiderName, o.RiderPhone, o.SpecialInstructions, o.BookingID,
	)
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

// CreateItemsBulkTx inserts the order's item lines in a single statement.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO order_items (order_id, menu_item_id, quantity, price) VALUES `
	args := make([]interface{}, 0, len(items)*4)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, it.OrderID, it.MenuItemID, it.Quantity, it.Price)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const orderCols = `id, user_id, guest_session_id, restaurant_id, subtotal, discount_amount,
	delivery_fee, total_amount, payment_method, payment_status, status, delivery_contact,
	rider_name, rider_phone, special_instructions, booking_id, created_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*model.Order, error) {
	var o model.Order
	var uid, gid, bid sql.NullInt64
	var contact []byte
	err := row.Scan(
		&o.ID, &uid, &gid, &o.RestaurantID, &o.Subtotal, &o.DiscountAmount,
		&o.DeliveryFee, &o.TotalAmount, &o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&contact, &o.RiderName, &o.RiderPhone, &o.SpecialInstructions, &bid, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if uid.Valid {
		v := uint64(uid.Int64)
		o.UserID = &v
	}
	if gid.Valid {
		v := uint64(gid.Int64)
		o.GuestSessionID = &v
	}
	if bid.Valid {
		v := uint64(bid.Int64)
		o.BookingID = &v
	}
	o.DeliveryContact = map[string]string{}
	if len(contact) > 0 {
		if err := json.Unmarshal(contact, &o.DeliveryContact); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

// GetByID retrieves an order by id.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders WHERE id = ?`
	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

// ListByGuest returns a guest session's orders, newest first.
func (r *OrderRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders WHERE guest_session_id = ? ORDER BY created_at DESC`
	return r.list(ctx, q, guestID)
}

func (r *OrderRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
