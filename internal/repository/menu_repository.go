package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"campus-table/internal/model"
)

// MenuRepo provides data access for food categories and menu items.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo constructs a MenuRepo with the given DB handle.
func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

const menuItemCols = `id, restaurant_id, name, description, price, cuisine_type, category_id,
	is_vegetarian, spice_level, is_available, image_url, is_student_set, set_items,
	requires_student_id, created_at`

func scanMenuItem(row interface{ Scan(...interface{}) error }) (*model.MenuItem, error) {
	var m model.MenuItem
	var setItems []byte
	err := row.Scan(
		&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price, &m.CuisineType,
		&m.CategoryID, &m.IsVegetarian, &m.SpiceLevel, &m.IsAvailable, &m.ImageURL,
		&m.IsStudentSet, &setItems, &m.RequiresStudentID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.SetItems = []string{}
	if len(setItems) > 0 {
		if err := json.Unmarshal(setItems, &m.SetItems); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// ListAvailable returns the available menu items of a restaurant,
// optionally restricted to a cuisine type, ordered by id.
func (r *MenuRepo) ListAvailable(ctx context.Context, restaurantID uint64, cuisineType string) ([]model.MenuItem, error) {
	q := `SELECT ` + menuItemCols + ` FROM menu_items WHERE restaurant_id = ? AND is_available = 1`
	args := []interface{}{restaurantID}
	if cuisineType != "" {
		q += ` AND cuisine_type = ?`
		args = append(args, cuisineType)
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPrices returns id -> price for the given menu items. Missing items
// are absent from the map; callers decide whether that is an error.
func (r *MenuRepo) GetPrices(ctx context.Context, itemIDs []uint64) (map[uint64]float64, error) {
	if len(itemIDs) == 0 {
		return map[uint64]float64{}, nil
	}
	placeholders := make([]string, len(itemIDs))
	args := make([]interface{}, len(itemIDs))
	for i, id := range itemIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	q := `SELECT id, price FROM menu_items WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[uint64]float64, len(itemIDs))
	for rows.Next() {
		var id uint64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

// CreateCategory inserts a food category. Used by the seeding utility.
func (r *MenuRepo) CreateCategory(ctx context.Context, c *model.FoodCategory) error {
	const q = `INSERT INTO food_categories (name, description, icon) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.Icon)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// CreateItem inserts a menu item. Used by the seeding utility.
func (r *MenuRepo) CreateItem(ctx context.Context, m *model.MenuItem) error {
	setItems, err := json.Marshal(m.SetItems)
	if err != nil {
		return err
	}
	if m.SetItems == nil {
		setItems = []byte("[]")
	}
	const q = `INSERT INTO menu_items
		(restaurant_id, name, description, price, cuisine_type, category_id,
		 is_vegetarian, spice_level, is_available, image_url, is_student_set,
		 set_items, requires_student_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.RestaurantID, m.Name, m.Description, m.Price, m.CuisineType, m.CategoryID,
		m.IsVegetarian, m.SpiceLevel, m.IsAvailable, m.ImageURL, m.IsStudentSet,
		string(setItems), m.RequiresStudentID,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetItem retrieves a menu item by id.
func (r *MenuRepo) GetItem(ctx context.Context, id uint64) (*model.MenuItem, error) {
	q := `SELECT ` + menuItemCols + ` FROM menu_items WHERE id = ?`
	m, err := scanMenuItem(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return m, nil
}
