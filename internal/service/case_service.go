package service

import (
	"context"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/repository"
	"github.com/dengue-surveillance-api/internal/validation"
	"github.com/rs/zerolog"
)

// caseService implements CaseService
type caseService struct {
	cases repository.CaseRepository
	log   zerolog.Logger
}

func newCaseService(cases repository.CaseRepository, log zerolog.Logger) *caseService {
	return &caseService{
		cases: cases,
		log:   log.With().Str("service", "case").Logger(),
	}
}

// List returns cases newest first, optionally filtered by status
func (s *caseService) List(ctx context.Context, status string, limit, offset int) ([]*models.Case, error) {
	return s.cases.List(ctx, status, repository.ListOptions{Limit: limit, Offset: offset})
}

// Get returns a case by id
func (s *caseService) Get(ctx context.Context, id int64) (*models.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to get case")
		return nil, err
	}
	if c == nil {
		return nil, customerrors.ErrCaseNotFound
	}
	return c, nil
}

// Create validates and persists a new case report
func (s *caseService) Create(ctx context.Context, userID int64, req *models.CaseCreate) (*models.Case, error) {
	if fieldErrs := validation.ValidateCaseCreate(req); len(fieldErrs) > 0 {
		return nil, customerrors.NewValidation(fieldErrs)
	}

	c := &models.Case{
		UserID:      &userID,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Status:      req.Status,
		Description: req.Description,
		ReportDate:  req.ReportDate,
	}

	if err := s.cases.Create(ctx, c); err != nil {
		s.log.Error().Err(err).Msg("Failed to create case")
		return nil, err
	}

	s.log.Info().Int64("id", c.ID).Str("status", c.Status).Msg("Case created")
	return c, nil
}

// Update applies a sparse patch
func (s *caseService) Update(ctx context.Context, id int64, p *models.CasePatch) error {
	if fieldErrs := validation.ValidateCasePatch(p); len(fieldErrs) > 0 {
		return customerrors.NewValidation(fieldErrs)
	}

	rows, err := s.cases.Update(ctx, id, p)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to update case")
		return err
	}
	if rows == 0 {
		return customerrors.ErrCaseNotFound
	}
	return nil
}

// Delete removes a case
func (s *caseService) Delete(ctx context.Context, id int64) error {
	rows, err := s.cases.Delete(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to delete case")
		return err
	}
	if rows == 0 {
		return customerrors.ErrCaseNotFound
	}
	s.log.Info().Int64("id", id).Msg("Case deleted")
	return nil
}

// StatsSummary returns per-status totals
func (s *caseService) StatsSummary(ctx context.Context) ([]models.CaseStats, error) {
	return s.cases.StatsSummary(ctx)
}
