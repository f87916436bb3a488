package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dengue-surveillance-api/internal/models"
)

// caseRepo is the concrete implementation of CaseRepository
type caseRepo struct {
	db *sql.DB
}

// NewCaseRepo creates a new case repository
func NewCaseRepo(db *sql.DB) CaseRepository {
	return &caseRepo{db: db}
}

const caseColumns = `c.id, c.user_id, u.name AS user_name, c.latitude, c.longitude,
	c.status, c.description, c.report_date, c.created_at, c.updated_at`

func scanCase(row interface{ Scan(...interface{}) error }) (*models.Case, error) {
	var c models.Case
	err := row.Scan(
		&c.ID, &c.UserID, &c.UserName, &c.Latitude, &c.Longitude,
		&c.Status, &c.Description, &c.ReportDate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns cases newest-created first, optionally filtered by status
func (r *caseRepo) List(ctx context.Context, status string, opts ListOptions) ([]*models.Case, error) {
	limit, offset := opts.normalized()

	query := fmt.Sprintf(`SELECT %s FROM cases c LEFT JOIN users u ON c.user_id = u.id`, caseColumns)
	args := []interface{}{}

	if status != "" {
		query += " WHERE c.status = $1"
		args = append(args, status)
	}

	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cases := []*models.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// GetByID retrieves a case by id, (nil, nil) when absent
func (r *caseRepo) GetByID(ctx context.Context, id int64) (*models.Case, error) {
	query := fmt.Sprintf(`SELECT %s FROM cases c LEFT JOIN users u ON c.user_id = u.id WHERE c.id = $1`, caseColumns)

	c, err := scanCase(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new case and fills server-assigned fields
func (r *caseRepo) Create(ctx context.Context, c *models.Case) error {
	query := `
		INSERT INTO cases (user_id, latitude, longitude, status, description, report_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		c.UserID, c.Latitude, c.Longitude, c.Status, c.Description, c.ReportDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update applies only the fields present in the patch and returns the
// number of rows affected
func (r *caseRepo) Update(ctx context.Context, id int64, p *models.CasePatch) (int64, error) {
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
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.ReportDate != nil {
		add("report_date", *p.ReportDate)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE cases SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a case and returns the number of rows affected
func (r *caseRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cases WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StatsSummary returns per-status totals and counts over the last 7 days
func (r *caseRepo) StatsSummary(ctx context.Context) ([]models.CaseStats, error) {
	query := `
		SELECT status,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days') AS last_7_days
		FROM cases
		GROUP BY status
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.CaseStats{}
	for rows.Next() {
		var s models.CaseStats
		if err := rows.Scan(&s.Status, &s.Total, &s.Last7Days); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
