package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dengue-surveillance-api/internal/models"
)

// sightingRepo is the concrete implementation of SightingRepository
type sightingRepo struct {
	db *sql.DB
}

// NewSightingRepo creates a new sighting repository
func NewSightingRepo(db *sql.DB) SightingRepository {
	return &sightingRepo{db: db}
}

const sightingColumns = `s.id, s.user_id, u.name AS user_name, s.latitude, s.longitude,
	s.category, s.source, s.description, s.report_date, s.created_at, s.updated_at`

func scanSighting(row interface{ Scan(...interface{}) error }) (*models.Sighting, error) {
	var s models.Sighting
	err := row.Scan(
		&s.ID, &s.UserID, &s.UserName, &s.Latitude, &s.Longitude,
		&s.Category, &s.Source, &s.Description, &s.ReportDate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns sightings newest-created first, optionally filtered by category
func (r *sightingRepo) List(ctx context.Context, category string, opts ListOptions) ([]*models.Sighting, error) {
	limit, offset := opts.normalized()

	query := fmt.Sprintf(`SELECT %s FROM sightings s LEFT JOIN users u ON s.user_id = u.id`, sightingColumns)
	args := []interface{}{}

	if category != "" {
		query += " WHERE s.category = $1"
		args = append(args, category)
	}

	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sightings := []*models.Sighting{}
	for rows.Next() {
		s, err := scanSighting(rows)
		if err != nil {
			return nil, err
		}
		sightings = append(sightings, s)
	}
	return sightings, rows.Err()
}

// GetByID retrieves a sighting by id, (nil, nil) when absent
func (r *sightingRepo) GetByID(ctx context.Context, id int64) (*models.Sighting, error) {
	query := fmt.Sprintf(`SELECT %s FROM sightings s LEFT JOIN users u ON s.user_id = u.id WHERE s.id = $1`, sightingColumns)

	s, err := scanSighting(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new sighting and fills server-assigned fields
func (r *sightingRepo) Create(ctx context.Context, s *models.Sighting) error {
	query := `
		INSERT INTO sightings (user_id, latitude, longitude, category, source, description, report_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		s.UserID, s.Latitude, s.Longitude, s.Category, s.Source, s.Description, s.ReportDate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update applies only the fields present in the patch and returns the
// number of rows affected
func (r *sightingRepo) Update(ctx context.Context, id int64, p *models.SightingPatch) (int64, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.Latitude != nil {
		add("latitude", *p.Latitude)
	}
	if p.Longitude != nil {
		add("longitude", *p.Longitude)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Source != nil {
		add("source", *p.Source)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.ReportDate != nil {
		add("report_date", *p.ReportDate)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE sightings SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a sighting and returns the number of rows affected
func (r *sightingRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sightings WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
