package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dengue-surveillance-api/internal/models"
)

// riskAreaRepo is the concrete implementation of RiskAreaRepository
type riskAreaRepo struct {
	db *sql.DB
}

// NewRiskAreaRepo creates a new risk-area repository
func NewRiskAreaRepo(db *sql.DB) RiskAreaRepository {
	return &riskAreaRepo{db: db}
}

const riskAreaColumns = `a.id, a.user_id, u.name AS user_name, a.latitude, a.longitude,
	a.severity, a.radius, a.description, a.report_date, a.created_at, a.updated_at`

func scanRiskArea(row interface{ Scan(...interface{}) error }) (*models.RiskArea, error) {
	var a models.RiskArea
	err := row.Scan(
		&a.ID, &a.UserID, &a.UserName, &a.Latitude, &a.Longitude,
		&a.Severity, &a.Radius, &a.Description, &a.ReportDate,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns risk areas newest-created first, optionally filtered by severity
func (r *riskAreaRepo) List(ctx context.Context, severity string, opts ListOptions) ([]*models.RiskArea, error) {
	limit, offset := opts.normalized()

	query := fmt.Sprintf(`SELECT %s FROM risk_areas a LEFT JOIN users u ON a.user_id = u.id`, riskAreaColumns)
	args := []interface{}{}

	if severity != "" {
		query += " WHERE a.severity = $1"
		args = append(args, severity)
	}

	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := []*models.RiskArea{}
	for rows.Next() {
		a, err := scanRiskArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// GetByID retrieves a risk area by id, (nil, nil) when absent
func (r *riskAreaRepo) GetByID(ctx context.Context, id int64) (*models.RiskArea, error) {
	query := fmt.Sprintf(`SELECT %s FROM risk_areas a LEFT JOIN users u ON a.user_id = u.id WHERE a.id = $1`, riskAreaColumns)

	a, err := scanRiskArea(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new risk area and fills server-assigned fields
func (r *riskAreaRepo) Create(ctx context.Context, a *models.RiskArea) error {
	query := `
		INSERT INTO risk_areas (user_id, latitude, longitude, severity, radius, description, report_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		a.UserID, a.Latitude, a.Longitude, a.Severity, a.Radius, a.Description, a.ReportDate,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// Update applies only the fields present in the patch and returns the
// number of rows affected
func (r *riskAreaRepo) Update(ctx context.Context, id int64, p *models.RiskAreaPatch) (int64, error) {
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
	if p.Severity != nil {
		add("severity", *p.Severity)
	}
	if p.Radius != nil {
		add("radius", *p.Radius)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.ReportDate != nil {
		add("report_date", *p.ReportDate)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE risk_areas SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a risk area and returns the number of rows affected
func (r *riskAreaRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM risk_areas WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
