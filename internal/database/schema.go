package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL applied at startup. Statements are idempotent so
// the server can run them on every boot. booking_seats.seat_code is a
// plain string on purpose: bookings may carry generated seat codes that
// have no matching row in seats.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS institutions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		type VARCHAR(20) NOT NULL,
		area VARCHAR(100) NOT NULL,
		latitude DECIMAL(9,6) NOT NULL DEFAULT 0,
		longitude DECIMAL(9,6) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(254) NOT NULL UNIQUE,
		name VARCHAR(100) NOT NULL DEFAULT '',
		phone VARCHAR(15) NOT NULL DEFAULT '',
		institution_id BIGINT UNSIGNED NULL,
		preferred_areas JSON NOT NULL,
		reward_points BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (institution_id) REFERENCES institutions(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS guest_sessions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		session_id VARCHAR(100) NOT NULL UNIQUE,
		phone VARCHAR(15) NOT NULL DEFAULT '',
		email VARCHAR(254) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS food_categories (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		description TEXT NOT NULL,
		icon VARCHAR(10) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		area VARCHAR(100) NOT NULL,
		address VARCHAR(300) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		latitude DECIMAL(9,6) NOT NULL DEFAULT 0,
		longitude DECIMAL(9,6) NOT NULL DEFAULT 0,
		is_open TINYINT(1) NOT NULL DEFAULT 1,
		opening_time TIME NOT NULL,
		closing_time TIME NOT NULL,
		average_rating DECIMAL(3,2) NOT NULL DEFAULT 0,
		total_reviews INT UNSIGNED NOT NULL DEFAULT 0,
		has_private_room TINYINT(1) NOT NULL DEFAULT 0,
		has_smoking_zone TINYINT(1) NOT NULL DEFAULT 0,
		has_prayer_zone TINYINT(1) NOT NULL DEFAULT 0,
		capacity INT UNSIGNED NOT NULL,
		logo TEXT NOT NULL,
		color_theme VARCHAR(7) NOT NULL DEFAULT '#FF6B6B',
		font_family VARCHAR(100) NOT NULL DEFAULT 'Inter',
		wallpaper_url VARCHAR(500) NOT NULL DEFAULT '',
		cuisines JSON NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		code VARCHAR(10) NOT NULL,
		is_private_room TINYINT(1) NOT NULL DEFAULT 0,
		x_position INT NOT NULL,
		y_position INT NOT NULL,
		UNIQUE KEY uq_seats_restaurant_code (restaurant_id, code),
		FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS occupied_seats (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		seat_id BIGINT UNSIGNED NOT NULL,
		occupied_until DATETIME NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_occupied_until (seat_id, occupied_until),
		FOREIGN KEY (seat_id) REFERENCES seats(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(6,2) NOT NULL,
		cuisine_type VARCHAR(20) NOT NULL,
		category_id BIGINT UNSIGNED NOT NULL,
		is_vegetarian TINYINT(1) NOT NULL DEFAULT 0,
		spice_level TINYINT UNSIGNED NOT NULL DEFAULT 1,
		is_available TINYINT(1) NOT NULL DEFAULT 1,
		image_url VARCHAR(500) NOT NULL DEFAULT '',
		is_student_set TINYINT(1) NOT NULL DEFAULT 0,
		set_items JSON NOT NULL,
		requires_student_id TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES food_categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NULL,
		guest_session_id BIGINT UNSIGNED NULL,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		status ENUM('pending','confirmed','cancelled','completed') NOT NULL DEFAULT 'pending',
		customer_name VARCHAR(100) NOT NULL DEFAULT '',
		customer_phone VARCHAR(20) NOT NULL DEFAULT '',
		payment_method VARCHAR(50) NOT NULL DEFAULT 'cash',
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_window (restaurant_id, status, start_time, end_time),
		FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE,
		FOREIGN KEY (guest_session_id) REFERENCES guest_sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS booking_seats (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT UNSIGNED NOT NULL,
		seat_code VARCHAR(50) NOT NULL,
		KEY idx_booking_seats_code (seat_code),
		FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NULL,
		guest_session_id BIGINT UNSIGNED NULL,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		subtotal DECIMAL(8,2) NOT NULL,
		discount_amount DECIMAL(8,2) NOT NULL DEFAULT 0,
		delivery_fee DECIMAL(6,2) NOT NULL DEFAULT 0,
		total_amount DECIMAL(8,2) NOT NULL,
		payment_method VARCHAR(20) NOT NULL,
		payment_status ENUM('pending','paid','failed','refunded') NOT NULL DEFAULT 'pending',
		status ENUM('pending','confirmed','preparing','ready','out_for_delivery','delivered','cancelled') NOT NULL DEFAULT 'pending',
		delivery_contact JSON NOT NULL,
		rider_name VARCHAR(100) NOT NULL DEFAULT '',
		rider_phone VARCHAR(15) NOT NULL DEFAULT '',
		special_instructions TEXT NOT NULL,
		booking_id BIGINT UNSIGNED NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE,
		FOREIGN KEY (guest_session_id) REFERENCES guest_sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE,
		FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT UNSIGNED NOT NULL,
		menu_item_id BIGINT UNSIGNED NOT NULL,
		quantity INT UNSIGNED NOT NULL,
		price DECIMAL(6,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (menu_item_id) REFERENCES menu_items(id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		restaurant_id BIGINT UNSIGNED NOT NULL,
		order_id BIGINT UNSIGNED NOT NULL,
		rating TINYINT UNSIGNED NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reviews_user_order (user_id, order_id),
		FOREIGN KEY (user_id) REFERENCES user_profiles(id) ON DELETE CASCADE,
		FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	)`,
}

// Migrate applies the schema. Safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
