package service

import (
	"context"

	"github.com/dengue-surveillance-api/internal/auth"
	"github.com/dengue-surveillance-api/internal/config"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/realtime"
	"github.com/dengue-surveillance-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for credential verification and
// account registration
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSummary, error)
	Verify(token string) (*auth.Claims, error)
	EnsureDefaultUsers(ctx context.Context) error
}

// SightingService defines the interface for breeding-site report operations
type SightingService interface {
	List(ctx context.Context, category string, limit, offset int) ([]*models.Sighting, error)
	Get(ctx context.Context, id int64) (*models.Sighting, error)
	Create(ctx context.Context, userID int64, req *models.SightingCreate) (*models.Sighting, error)
	Update(ctx context.Context, id int64, p *models.SightingPatch) error
	Delete(ctx context.Context, id int64) error
}

// RiskAreaService defines the interface for risk-area operations
type RiskAreaService interface {
	List(ctx context.Context, severity string, limit, offset int) ([]*models.RiskArea, error)
	Get(ctx context.Context, id int64) (*models.RiskArea, error)
	Create(ctx context.Context, userID int64, req *models.RiskAreaCreate) (*models.RiskArea, error)
	Update(ctx context.Context, id int64, p *models.RiskAreaPatch) error
	Delete(ctx context.Context, id int64) error
}

// CaseService defines the interface for dengue case operations
type CaseService interface {
	List(ctx context.Context, status string, limit, offset int) ([]*models.Case, error)
	Get(ctx context.Context, id int64) (*models.Case, error)
	Create(ctx context.Context, userID int64, req *models.CaseCreate) (*models.Case, error)
	Update(ctx context.Context, id int64, p *models.CasePatch) error
	Delete(ctx context.Context, id int64) error
	StatsSummary(ctx context.Context) ([]models.CaseStats, error)
}

// NotificationService defines the dispatcher and the read-state API
type NotificationService interface {
	NotifyRiskArea(ctx context.Context, area *models.RiskArea) error
	List(ctx context.Context, userID int64, read *bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Auth         AuthService
	Sighting     SightingService
	RiskArea     RiskAreaService
	Case         CaseService
	Notification NotificationService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, hub *realtime.Hub, log zerolog.Logger) *Services {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	notificationSvc := newNotificationService(repos.Notification, hub, log)

	return &Services{
		Auth:         newAuthService(repos.User, tokens, cfg.Auth.BcryptCost, log),
		Sighting:     newSightingService(repos.Sighting, log),
		RiskArea:     newRiskAreaService(repos.RiskArea, notificationSvc, log),
		Case:         newCaseService(repos.Case, log),
		Notification: notificationSvc,
	}
}
