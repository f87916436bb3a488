package api

import (
	"net/http"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RiskAreaHandler handles risk-area endpoints
type RiskAreaHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewRiskAreaHandler creates a new RiskAreaHandler
func NewRiskAreaHandler(services *service.Services, log zerolog.Logger) *RiskAreaHandler {
	return &RiskAreaHandler{
		services: services,
		log:      log.With().Str("handler", "risk_area").Logger(),
	}
}

// List handles GET /api/risk-areas
func (h *RiskAreaHandler) List(c *gin.Context) {
	limit, offset := listQuery(c)

	areas, err := h.services.RiskArea.List(c.Request.Context(), c.Query("severity"), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list risk areas")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, areas)
}

// Get handles GET /api/risk-areas/:id
func (h *RiskAreaHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	area, err := h.services.RiskArea.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, area)
}

// Create handles POST /api/risk-areas. High-severity declarations also
// dispatch a notification, but the response never waits on delivery.
func (h *RiskAreaHandler) Create(c *gin.Context) {
	var req models.RiskAreaCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, customerrors.ErrBadRequest)
		return
	}

	area, err := h.services.RiskArea.Create(c.Request.Context(), identity(c).UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, area)
}

// Update handles PUT /api/risk-areas/:id
func (h *RiskAreaHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch models.RiskAreaPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, customerrors.ErrBadRequest)
		return
	}

	if err := h.services.RiskArea.Update(c.Request.Context(), id, &patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "risk area updated", "id": id})
}

// Delete handles DELETE /api/risk-areas/:id
func (h *RiskAreaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.RiskArea.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "risk area deleted", "id": id})
}
