package repository

import (
	"context"
	"database/sql"
	"time"
)

// StatsRepo aggregates data for the admin dashboard. All aggregation
// happens in SQL with explicit GROUP BY queries; nothing here mutates
// state.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo constructs a StatsRepo with the given DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// DashboardTotals carries the platform-wide counters and revenue sums.
type DashboardTotals struct {
	TotalUsers       int64   `json:"total_users"`
	TotalOrders      int64   `json:"total_orders"`
	TotalBookings    int64   `json:"total_bookings"`
	TotalReviews     int64   `json:"total_reviews"`
	TotalRevenue     float64 `json:"total_revenue"`
	DeliveredRevenue float64 `json:"confirmed_revenue"`
	RecentRevenue    float64 `json:"recent_revenue"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	PendingOrders    int64   `json:"pending_orders"`
	ConfirmedOrders  int64   `json:"confirmed_orders"`
	DeliveredOrders  int64   `json:"delivered_orders"`
	CancelledOrders  int64   `json:"cancelled_orders"`
}

// Totals computes the dashboard counters. RecentRevenue covers orders
// created within the last seven days before now.
func (r *StatsRepo) Totals(ctx context.Context, now time.Time) (*DashboardTotals, error) {
	var t DashboardTotals
	const q = `SELECT
		(SELECT COUNT(*) FROM user_profiles),
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM bookings),
		(SELECT COUNT(*) FROM reviews),
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders),
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = 'delivered'),
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE created_at >= ?),
		(SELECT COALESCE(AVG(total_amount), 0) FROM orders),
		(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
		(SELECT COUNT(*) FROM orders WHERE status = 'confirmed'),
		(SELECT COUNT(*) FROM orders WHERE status = 'delivered'),
		(SELECT COUNT(*) FROM orders WHERE status = 'cancelled')`
	weekAgo := now.UTC().Add(-7 * 24 * time.Hour)
	err := r.db.QueryRowContext(ctx, q, weekAgo).Scan(
		&t.TotalUsers, &t.TotalOrders, &t.TotalBookings, &t.TotalReviews,
		&t.TotalRevenue, &t.DeliveredRevenue, &t.RecentRevenue, &t.AvgOrderValue,
		&t.PendingOrders, &t.ConfirmedOrders, &t.DeliveredOrders, &t.CancelledOrders,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RestaurantStat is one row of the per-restaurant revenue breakdown.
type RestaurantStat struct {
	RestaurantID   uint64  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	Area           string  `json:"area"`
	TotalOrders    int64   `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgOrderValue  float64 `json:"avg_order_value"`
}

// RestaurantStats returns order counts and revenue per restaurant,
// highest revenue first.
func (r *StatsRepo) RestaurantStats(ctx context.Context) ([]RestaurantStat, error) {
	const q = `SELECT rst.id, rst.name, rst.area,
	                  COUNT(o.id), COALESCE(SUM(o.total_amount), 0), COALESCE(AVG(o.total_amount), 0)
	           FROM restaurants rst
	           JOIN orders o ON o.restaurant_id = rst.id
	           GROUP BY rst.id, rst.name, rst.area
	           ORDER BY SUM(o.total_amount) DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]RestaurantStat, 0)
	for rows.Next() {
		var s RestaurantStat
		if err := rows.Scan(&s.RestaurantID, &s.RestaurantName, &s.Area, &s.TotalOrders, &s.TotalRevenue, &s.AvgOrderValue); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UserOrderSummary is one recent order inside a UserStat.
type UserOrderSummary struct {
	OrderID        uint64    `json:"order_id"`
	RestaurantName string    `json:"restaurant_name"`
	TotalAmount    float64   `json:"total_amount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	ItemsCount     int64     `json:"items_count"`
}

// UserStat summarizes one user's activity for the dashboard.
type UserStat struct {
	UserID        uint64             `json:"user_id"`
	Email         string             `json:"email"`
	Name          string             `json:"name"`
	Institution   string             `json:"institution"`
	TotalOrders   int64              `json:"total_orders"`
	TotalBookings int64              `json:"total_bookings"`
	TotalSpent    float64            `json:"total_spent"`
	RewardPoints  int64              `json:"reward_points"`
	LastOrder     *time.Time         `json:"last_order"`
	RecentOrders  []UserOrderSummary `json:"recent_orders"`
}

// UserStats returns per-user totals ordered by total spend descending,
// each with up to five most recent orders. Recent orders for all users
// are loaded in one ranked query instead of one query per user.
func (r *StatsRepo) UserStats(ctx context.Context) ([]UserStat, error) {
	const q = `SELECT u.id, u.email, u.name, COALESCE(i.name, 'No Institution'), u.reward_points,
	                  (SELECT COUNT(*) FROM orders o WHERE o.user_id = u.id),
	                  (SELECT COUNT(*) FROM bookings b WHERE b.user_id = u.id),
	                  (SELECT COALESCE(SUM(o.total_amount), 0) FROM orders o WHERE o.user_id = u.id),
	                  (SELECT MAX(o.created_at) FROM orders o WHERE o.user_id = u.id)
	           FROM user_profiles u
	           LEFT JOIN institutions i ON i.id = u.institution_id
	           ORDER BY 8 DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]UserStat, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var s UserStat
		var last sql.NullTime
		if err := rows.Scan(&s.UserID, &s.Email, &s.Name, &s.Institution, &s.RewardPoints,
			&s.TotalOrders, &s.TotalBookings, &s.TotalSpent, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			t := last.Time
			s.LastOrder = &t
		}
		s.RecentOrders = []UserOrderSummary{}
		index[s.UserID] = len(stats)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return stats, nil
	}
	// Rank each user's orders by recency and keep the top five.
	const recentQ = `SELECT user_id, order_id, restaurant_name, total_amount, status, created_at, items_count FROM (
	                   SELECT o.user_id AS user_id, o.id AS order_id, rst.name AS restaurant_name,
	                          o.total_amount AS total_amount, o.status AS status, o.created_at AS created_at,
	                          (SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS items_count,
	                          ROW_NUMBER() OVER (PARTITION BY o.user_id ORDER BY o.created_at DESC) AS rn
	                   FROM orders o
	                   JOIN restaurants rst ON rst.id = o.restaurant_id
	                   WHERE o.user_id IS NOT NULL
	                 ) ranked
	                 WHERE rn <= 5
	                 ORDER BY user_id, created_at DESC`
	orows, err := r.db.QueryContext(ctx, recentQ)
	if err != nil {
		return nil, err
	}
	defer orows.Close()
	for orows.Next() {
		var uid uint64
		var o UserOrderSummary
		if err := orows.Scan(&uid, &o.OrderID, &o.RestaurantName, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.ItemsCount); err != nil {
			return nil, err
		}
		if idx, ok := index[uid]; ok {
			stats[idx].RecentOrders = append(stats[idx].RecentOrders, o)
		}
	}
	if err := orows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// LatestOrder is one row of the dashboard's recent order feed.
type LatestOrder struct {
	OrderID        uint64    `json:"order_id"`
	RestaurantName string    `json:"restaurant_name"`
	Customer       string    `json:"customer"`
	TotalAmount    float64   `json:"total_amount"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// LatestOrders returns the most recent orders, newest first. Guest
// orders are labeled "Guest" since sessions carry no display name.
func (r *StatsRepo) LatestOrders(ctx context.Context, limit int) ([]LatestOrder, error) {
	const q = `SELECT o.id, rst.name, COALESCE(u.name, 'Guest'), o.total_amount, o.payment_method, o.status, o.created_at
	           FROM orders o
	           JOIN restaurants rst ON rst.id = o.restaurant_id
	           LEFT JOIN user_profiles u ON u.id = o.user_id
	           ORDER BY o.created_at DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]LatestOrder, 0)
	for rows.Next() {
		var o LatestOrder
		if err := rows.Scan(&o.OrderID, &o.RestaurantName, &o.Customer, &o.TotalAmount, &o.PaymentMethod, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LatestBooking is one row of the dashboard's recent booking feed.
type LatestBooking struct {
	BookingID      uint64    `json:"booking_id"`
	RestaurantName string    `json:"restaurant_name"`
	CustomerName   string    `json:"customer_name"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	SeatCount      int64     `json:"seat_count"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// LatestBookings returns the most recent bookings, newest first.
func (r *StatsRepo) LatestBookings(ctx context.Context, limit int) ([]LatestBooking, error) {
	const q = `SELECT b.id, rst.name, b.customer_name, b.start_time, b.end_time,
	                  (SELECT COUNT(*) FROM booking_seats bs WHERE bs.booking_id = b.id),
	                  b.status, b.created_at
	           FROM bookings b
	           JOIN restaurants rst ON rst.id = b.restaurant_id
	           ORDER BY b.created_at DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]LatestBooking, 0)
	for rows.Next() {
		var b LatestBooking
		if err := rows.Scan(&b.BookingID, &b.RestaurantName, &b.CustomerName, &b.StartTime, &b.EndTime, &b.SeatCount, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LatestReview is one row of the dashboard's recent review feed.
type LatestReview struct {
	ReviewID       uint64    `json:"review_id"`
	RestaurantName string    `json:"restaurant_name"`
	UserName       string    `json:"user_name"`
	Rating         uint8     `json:"rating"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// LatestReviews returns the most recent reviews, newest first.
func (r *StatsRepo) LatestReviews(ctx context.Context, limit int) ([]LatestReview, error) {
	const q = `SELECT rv.id, rst.name, u.name, rv.rating, rv.text, rv.created_at
	           FROM reviews rv
	           JOIN restaurants rst ON rst.id = rv.restaurant_id
	           JOIN user_profiles u ON u.id = rv.user_id
	           ORDER BY rv.created_at DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]LatestReview, 0)
	for rows.Next() {
		var rev LatestReview
		if err := rows.Scan(&rev.ReviewID, &rev.RestaurantName, &rev.UserName, &rev.Rating, &rev.Text, &rev.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
