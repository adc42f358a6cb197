package repository

import (
	"context"
	"database/sql"

	"campus-table/internal/model"
)

// InstitutionRepo provides read access to the institution catalogue.
type InstitutionRepo struct {
	db *sql.DB
}

// NewInstitutionRepo constructs an InstitutionRepo with the given DB handle.
func NewInstitutionRepo(db *sql.DB) *InstitutionRepo {
	return &InstitutionRepo{db: db}
}

// List returns institutions, optionally filtered by a substring match
// against name or area.
func (r *InstitutionRepo) List(ctx context.Context, search string) ([]model.Institution, error) {
	q := `SELECT id, name, type, area, latitude, longitude FROM institutions`
	args := []interface{}{}
	if search != "" {
		q += ` WHERE name LIKE ? OR area LIKE ?`
		pat := "%" + search + "%"
		args = append(args, pat, pat)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Institution, 0)
	for rows.Next() {
		var in model.Institution
		if err := rows.Scan(&in.ID, &in.Name, &in.Type, &in.Area, &in.Latitude, &in.Longitude); err != nil {
			return nil, err
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts an institution record. Used by the seeding utility.
func (r *InstitutionRepo) Create(ctx context.Context, in *model.Institution) error {
	const q = `INSERT INTO institutions (name, type, area, latitude, longitude) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Name, in.Type, in.Area, in.Latitude, in.Longitude)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	in.ID = uint64(id)
	return nil
}
