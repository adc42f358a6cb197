package repository // repository defines data access for user profiles and guest sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"campus-table/internal/model"
)

// UserRepo provides methods to work with registered user profiles.
// Login is email based: GetOrCreateByEmail backs the passwordless login
// flow and creates the profile on first sight of an email.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userCols = `id, email, name, phone, institution_id, preferred_areas, reward_points, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.UserProfile, error) {
	var u model.UserProfile
	var inst sql.NullInt64
	var areas []byte
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &inst, &areas, &u.RewardPoints, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if inst.Valid {
		v := uint64(inst.Int64)
		u.InstitutionID = &v
	}
	u.PreferredAreas = []string{}
	if len(areas) > 0 {
		if err := json.Unmarshal(areas, &u.PreferredAreas); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// GetByID retrieves a user profile by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.UserProfile, error) {
	q := `SELECT ` + userCols + ` FROM user_profiles WHERE id = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetOrCreateByEmail returns the profile for the email, creating it when
// absent. When the profile already exists and a non-empty name is
// supplied that differs from the stored one, the name is updated. The
// second return value reports whether a new profile was created.
func (r *UserRepo) GetOrCreateByEmail(ctx context.Context, email, name string) (*model.UserProfile, bool, error) {
	q := `SELECT ` + userCols + ` FROM user_profiles WHERE email = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err == nil {
		if name != "" && u.Name != name {
			const upd = `UPDATE user_profiles SET name = ? WHERE id = ?`
			if _, err := r.db.ExecContext(ctx, upd, name, u.ID); err != nil {
				return nil, false, err
			}
			u.Name = name
		}
		return u, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}
	const ins = `INSERT INTO user_profiles (email, name, preferred_areas) VALUES (?, ?, '[]')`
	res, err := r.db.ExecContext(ctx, ins, email, name)
	if err != nil {
		return nil, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, err
	}
	created := &model.UserProfile{ID: uint64(id), Email: email, Name: name, PreferredAreas: []string{}}
	return created, true, nil
}

// UpdatePreferredAreas replaces the user's preferred area list.
func (r *UserRepo) UpdatePreferredAreas(ctx context.Context, userID uint64, areas []string) error {
	if areas == nil {
		areas = []string{}
	}
	blob, err := json.Marshal(areas)
	if err != nil {
		return err
	}
	const q = `UPDATE user_profiles SET preferred_areas = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, string(blob), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such user" from "same value written again"
		if _, err := r.GetByID(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// AddRewardPointsTx credits reward points inside the caller's
// transaction, so the credit commits together with the order that
// earned it.
func (r *UserRepo) AddRewardPointsTx(ctx context.Context, tx *sql.Tx, userID uint64, points int64) error {
	if points <= 0 {
		return nil
	}
	const q = `UPDATE user_profiles SET reward_points = reward_points + ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, points, userID)
	return err
}

// GuestRepo provides methods to work with anonymous guest sessions.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the given DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

// Create inserts a guest session with the given session identifier.
func (r *GuestRepo) Create(ctx context.Context, sessionID string) (*model.GuestSession, error) {
	const q = `INSERT INTO guest_sessions (session_id) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.GuestSession{ID: uint64(id), SessionID: sessionID}, nil
}

// GetByID retrieves a guest session by id.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.GuestSession, error) {
	const q = `SELECT id, session_id, phone, email, created_at FROM guest_sessions WHERE id = ?`
	var g model.GuestSession
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.SessionID, &g.Phone, &g.Email, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}
