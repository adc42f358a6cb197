package repository // repository defines data access for restaurants

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"campus-table/internal/model"
)

// RestaurantRepo provides methods to work with restaurants in the database.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo constructs a RestaurantRepo with the given DB handle.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions that
// span repositories.
func (r *RestaurantRepo) DB() *sql.DB { return r.db }

const restaurantCols = `id, name, description, area, address, phone, latitude, longitude,
	is_open, TIME_FORMAT(opening_time, '%H:%i:%s'), TIME_FORMAT(closing_time, '%H:%i:%s'),
	average_rating, total_reviews, has_private_room, has_smoking_zone, has_prayer_zone,
	capacity, logo, color_theme, font_family, wallpaper_url, cuisines, created_at`

func scanRestaurant(row interface{ Scan(...interface{}) error }) (*model.Restaurant, error) {
	var rest model.Restaurant
	var cuisines []byte
	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Description, &rest.Area, &rest.Address, &rest.Phone,
		&rest.Latitude, &rest.Longitude, &rest.IsOpen, &rest.OpeningTime, &rest.ClosingTime,
		&rest.AverageRating, &rest.TotalReviews, &rest.HasPrivateRoom, &rest.HasSmokingZone,
		&rest.HasPrayerZone, &rest.Capacity, &rest.Logo, &rest.ColorTheme, &rest.FontFamily,
		&rest.WallpaperURL, &cuisines, &rest.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(cuisines) > 0 {
		if err := json.Unmarshal(cuisines, &rest.Cuisines); err != nil {
			return nil, err
		}
	}
	return &rest, nil
}

// RestaurantFilter narrows the restaurant listing. Zero values mean
// "no filter". Location parameters sent by older clients are ignored
// entirely; listing never filters by distance.
type RestaurantFilter struct {
	Search         string // substring match against name or area
	Cuisine        string // exact cuisine name inside the cuisines array
	HasPrivateRoom bool
	HasSmokingZone bool
	HasPrayerZone  bool
}

// ListOpen returns all open restaurants matching the filter, ordered by id.
func (r *RestaurantRepo) ListOpen(ctx context.Context, f RestaurantFilter) ([]model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants WHERE is_open = 1`
	args := make([]interface{}, 0, 4)
	if f.Search != "" {
		q += ` AND (name LIKE ? OR area LIKE ?)`
		pat := "%" + f.Search + "%"
		args = append(args, pat, pat)
	}
	if f.Cuisine != "" {
		// cuisines is a JSON array of strings
		q += ` AND JSON_CONTAINS(cuisines, JSON_QUOTE(?))`
		args = append(args, f.Cuisine)
	}
	if f.HasPrivateRoom {
		q += ` AND has_private_room = 1`
	}
	if f.HasSmokingZone {
		q += ` AND has_smoking_zone = 1`
	}
	if f.HasPrayerZone {
		q += ` AND has_prayer_zone = 1`
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Restaurant, 0)
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a restaurant by its id.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = ?`
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rest, nil
}

// LockTx takes a row lock on the restaurant inside the given transaction.
// Booking creation locks the restaurant before running its conflict
// check so that concurrent check-then-insert sequences for the same
// restaurant serialize; without the lock two requests could both observe
// "no conflict" and both insert. Returns ErrRestaurantNotFound when the
// restaurant does not exist.
func (r *RestaurantRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `SELECT id FROM restaurants WHERE id = ? FOR UPDATE`
	var got uint64
	if err := tx.QueryRowContext(ctx, q, id).Scan(&got); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return err
	}
	return nil
}

// Create inserts a restaurant record. On success the ID is populated.
// Used by the seeding utility.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	cuisines, err := json.Marshal(rest.Cuisines)
	if err != nil {
		return err
	}
	if rest.Cuisines == nil {
		cuisines = []byte("[]")
	}
	const q = `INSERT INTO restaurants
		(name, description, area, address, phone, latitude, longitude, is_open,
		 opening_time, closing_time, has_private_room, has_smoking_zone, has_prayer_zone,
		 capacity, logo, color_theme, font_family, wallpaper_url, cuisines)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		rest.Name, rest.Description, rest.Area, rest.Address, rest.Phone,
		rest.Latitude, rest.Longitude, rest.IsOpen,
		rest.OpeningTime, rest.ClosingTime,
		rest.HasPrivateRoom, rest.HasSmokingZone, rest.HasPrayerZone,
		rest.Capacity, rest.Logo, rest.ColorTheme, rest.FontFamily, rest.WallpaperURL,
		string(cuisines),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)
	return nil
}

// UpdateRatingTx recomputes average_rating and total_reviews from the
// reviews table within the given transaction. Called after a review
// insert so the two writes commit together.
func (r *RestaurantRepo) UpdateRatingTx(ctx context.Context, tx *sql.Tx, restaurantID uint64) error {
	const q = `UPDATE restaurants r
	           SET r.average_rating = (SELECT ROUND(AVG(rating), 2) FROM reviews WHERE restaurant_id = r.id),
	               r.total_reviews  = (SELECT COUNT(*) FROM reviews WHERE restaurant_id = r.id)
	           WHERE r.id = ?`
	_, err := tx.ExecContext(ctx, q, restaurantID)
	return err
}
