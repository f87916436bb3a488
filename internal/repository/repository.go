package repository

import (
	"context"
	"errors"

	"github.com/dengue-surveillance-api/internal/database"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/lib/pq"
)

// List pagination bounds. Limits are clamped so a single request cannot
// drain the table.
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ListOptions holds offset-based pagination parameters
type ListOptions struct {
	Limit  int
	Offset int
}

// normalized clamps limit and offset to safe values
func (o ListOptions) normalized() (int, int) {
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := o.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EnsureSeed(ctx context.Context, user *models.User) error
}

// SightingRepository defines the interface for breeding-site reports
type SightingRepository interface {
	List(ctx context.Context, category string, opts ListOptions) ([]*models.Sighting, error)
	GetByID(ctx context.Context, id int64) (*models.Sighting, error)
	Create(ctx context.Context, s *models.Sighting) error
	Update(ctx context.Context, id int64, p *models.SightingPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// RiskAreaRepository defines the interface for risk-area declarations
type RiskAreaRepository interface {
	List(ctx context.Context, severity string, opts ListOptions) ([]*models.RiskArea, error)
	GetByID(ctx context.Context, id int64) (*models.RiskArea, error)
	Create(ctx context.Context, a *models.RiskArea) error
	Update(ctx context.Context, id int64, p *models.RiskAreaPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CaseRepository defines the interface for dengue case reports
type CaseRepository interface {
	List(ctx context.Context, status string, opts ListOptions) ([]*models.Case, error)
	GetByID(ctx context.Context, id int64) (*models.Case, error)
	Create(ctx context.Context, c *models.Case) error
	Update(ctx context.Context, id int64, p *models.CasePatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	StatsSummary(ctx context.Context) ([]models.CaseStats, error)
}

// NotificationRepository defines the interface for system notifications.
// Visibility: a notification with NULL user_id is visible to every user.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID int64, read *bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (int64, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User         UserRepository
	Sighting     SightingRepository
	RiskArea     RiskAreaRepository
	Case         CaseRepository
	Notification NotificationRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepo(db.DB),
		Sighting:     NewSightingRepo(db.DB),
		RiskArea:     NewRiskAreaRepo(db.DB),
		Case:         NewCaseRepo(db.DB),
		Notification: NewNotificationRepo(db.DB),
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
