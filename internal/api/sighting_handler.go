package api

import (
	"net/http"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SightingHandler handles breeding-site report endpoints
type SightingHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSightingHandler creates a new SightingHandler
func NewSightingHandler(services *service.Services, log zerolog.Logger) *SightingHandler {
	return &SightingHandler{
		services: services,
		log:      log.With().Str("handler", "sighting").Logger(),
	}
}

// List handles GET /api/sightings
func (h *SightingHandler) List(c *gin.Context) {
	limit, offset := listQuery(c)

	sightings, err := h.services.Sighting.List(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list sightings")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sightings)
}

// Get handles GET /api/sightings/:id
func (h *SightingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sighting, err := h.services.Sighting.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sighting)
}

// Create handles POST /api/sightings
func (h *SightingHandler) Create(c *gin.Context) {
	var req models.SightingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, customerrors.ErrBadRequest)
		return
	}

	sighting, err := h.services.Sighting.Create(c.Request.Context(), identity(c).UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sighting)
}

// Update handles PUT /api/sightings/:id
func (h *SightingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch models.SightingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, customerrors.ErrBadRequest)
		return
	}

	if err := h.services.Sighting.Update(c.Request.Context(), id, &patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sighting updated", "id": id})
}

// Delete handles DELETE /api/sightings/:id
func (h *SightingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Sighting.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sighting deleted", "id": id})
}
