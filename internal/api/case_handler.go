package api

import (
	"net/http"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CaseHandler handles dengue case endpoints
type CaseHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCaseHandler creates a new CaseHandler
func NewCaseHandler(services *service.Services, log zerolog.Logger) *CaseHandler {
	return &CaseHandler{
		services: services,
		log:      log.With().Str("handler", "case").Logger(),
	}
}

// List handles GET /api/cases
func (h *CaseHandler) List(c *gin.Context) {
	limit, offset := listQuery(c)

	cases, err := h.services.Case.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list cases")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cases)
}

// Get handles GET /api/cases/:id
func (h *CaseHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caseReport, err := h.services.Case.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, caseReport)
}

// Create handles POST /api/cases
func (h *CaseHandler) Create(c *gin.Context) {
	var req models.CaseCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, customerrors.ErrBadRequest)
		return
	}

	caseReport, err := h.services.Case.Create(c.Request.Context(), identity(c).UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, caseReport)
}

// Update handles PUT /api/cases/:id
func (h *CaseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch models.CasePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, customerrors.ErrBadRequest)
		return
	}

	if err := h.services.Case.Update(c.Request.Context(), id, &patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "case updated", "id": id})
}

// Delete handles DELETE /api/cases/:id
func (h *CaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Case.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "case deleted", "id": id})
}

// Stats handles GET /api/cases/stats/summary
func (h *CaseHandler) Stats(c *gin.Context) {
	stats, err := h.services.Case.StatsSummary(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get case stats")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
