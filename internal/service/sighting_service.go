package service

import (
	"context"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/repository"
	"github.com/dengue-surveillance-api/internal/validation"
	"github.com/rs/zerolog"
)

// sightingService implements SightingService
type sightingService struct {
	sightings repository.SightingRepository
	log       zerolog.Logger
}

func newSightingService(sightings repository.SightingRepository, log zerolog.Logger) *sightingService {
	return &sightingService{
		sightings: sightings,
		log:       log.With().Str("service", "sighting").Logger(),
	}
}

// List returns sightings newest first, optionally filtered by category
func (s *sightingService) List(ctx context.Context, category string, limit, offset int) ([]*models.Sighting, error) {
	return s.sightings.List(ctx, category, repository.ListOptions{Limit: limit, Offset: offset})
}

// Get returns a sighting by id
func (s *sightingService) Get(ctx context.Context, id int64) (*models.Sighting, error) {
	sighting, err := s.sightings.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to get sighting")
		return nil, err
	}
	if sighting == nil {
		return nil, customerrors.ErrSightingNotFound
	}
	return sighting, nil
}

// Create validates and persists a new sighting, with the authenticated user
// as author
func (s *sightingService) Create(ctx context.Context, userID int64, req *models.SightingCreate) (*models.Sighting, error) {
	if fieldErrs := validation.ValidateSightingCreate(req); len(fieldErrs) > 0 {
		return nil, customerrors.NewValidation(fieldErrs)
	}

	source := req.Source
	if source == "" {
		source = models.SourceInspection
	}

	sighting := &models.Sighting{
		UserID:      &userID,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Category:    req.Category,
		Source:      source,
		Description: req.Description,
		ReportDate:  req.ReportDate,
	}

	if err := s.sightings.Create(ctx, sighting); err != nil {
		s.log.Error().Err(err).Msg("Failed to create sighting")
		return nil, err
	}

	s.log.Info().Int64("id", sighting.ID).Str("category", sighting.Category).Msg("Sighting created")
	return sighting, nil
}

// Update applies a sparse patch
func (s *sightingService) Update(ctx context.Context, id int64, p *models.SightingPatch) error {
	if fieldErrs := validation.ValidateSightingPatch(p); len(fieldErrs) > 0 {
		return customerrors.NewValidation(fieldErrs)
	}

	rows, err := s.sightings.Update(ctx, id, p)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to update sighting")
		return err
	}
	if rows == 0 {
		return customerrors.ErrSightingNotFound
	}
	return nil
}

// Delete removes a sighting
func (s *sightingService) Delete(ctx context.Context, id int64) error {
	rows, err := s.sightings.Delete(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to delete sighting")
		return err
	}
	if rows == 0 {
		return customerrors.ErrSightingNotFound
	}
	s.log.Info().Int64("id", id).Msg("Sighting deleted")
	return nil
}
