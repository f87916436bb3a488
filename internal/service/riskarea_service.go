package service

import (
	"context"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/repository"
	"github.com/dengue-surveillance-api/internal/validation"
	"github.com/rs/zerolog"
)

// riskAreaService implements RiskAreaService
type riskAreaService struct {
	areas    repository.RiskAreaRepository
	notifier NotificationService
	log      zerolog.Logger
}

func newRiskAreaService(areas repository.RiskAreaRepository, notifier NotificationService, log zerolog.Logger) *riskAreaService {
	return &riskAreaService{
		areas:    areas,
		notifier: notifier,
		log:      log.With().Str("service", "risk_area").Logger(),
	}
}

// List returns risk areas newest first, optionally filtered by severity
func (s *riskAreaService) List(ctx context.Context, severity string, limit, offset int) ([]*models.RiskArea, error) {
	return s.areas.List(ctx, severity, repository.ListOptions{Limit: limit, Offset: offset})
}

// Get returns a risk area by id
func (s *riskAreaService) Get(ctx context.Context, id int64) (*models.RiskArea, error) {
	area, err := s.areas.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to get risk area")
		return nil, err
	}
	if area == nil {
		return nil, customerrors.ErrRiskAreaNotFound
	}
	return area, nil
}

// Create validates and persists a new risk area. Declaring a high-severity
// area additionally dispatches one notification; dispatch failure is logged
// and never surfaced to the caller, so the created area is returned either
// way.
func (s *riskAreaService) Create(ctx context.Context, userID int64, req *models.RiskAreaCreate) (*models.RiskArea, error) {
	if fieldErrs := validation.ValidateRiskAreaCreate(req); len(fieldErrs) > 0 {
		return nil, customerrors.NewValidation(fieldErrs)
	}

	radius := models.DefaultRadiusMeters
	if req.Radius != nil {
		radius = *req.Radius
	}

	area := &models.RiskArea{
		UserID:      &userID,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Severity:    req.Severity,
		Radius:      radius,
		Description: req.Description,
		ReportDate:  req.ReportDate,
	}

	if err := s.areas.Create(ctx, area); err != nil {
		s.log.Error().Err(err).Msg("Failed to create risk area")
		return nil, err
	}

	s.log.Info().Int64("id", area.ID).Str("severity", area.Severity).Msg("Risk area created")

	if area.Severity == models.SeverityHigh {
		if err := s.notifier.NotifyRiskArea(ctx, area); err != nil {
			s.log.Warn().Err(err).Int64("area_id", area.ID).Msg("Risk-area notification failed")
		}
	}

	return area, nil
}

// Update applies a sparse patch. The notification trigger only fires on
// create, never on update.
func (s *riskAreaService) Update(ctx context.Context, id int64, p *models.RiskAreaPatch) error {
	if fieldErrs := validation.ValidateRiskAreaPatch(p); len(fieldErrs) > 0 {
		return customerrors.NewValidation(fieldErrs)
	}

	rows, err := s.areas.Update(ctx, id, p)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to update risk area")
		return err
	}
	if rows == 0 {
		return customerrors.ErrRiskAreaNotFound
	}
	return nil
}

// Delete removes a risk area
func (s *riskAreaService) Delete(ctx context.Context, id int64) error {
	rows, err := s.areas.Delete(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to delete risk area")
		return err
	}
	if rows == 0 {
		return customerrors.ErrRiskAreaNotFound
	}
	s.log.Info().Int64("id", id).Msg("Risk area deleted")
	return nil
}
