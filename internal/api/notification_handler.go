package api

import (
	"net/http"
	"strconv"

	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NotificationHandler handles notification read-state endpoints
type NotificationHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(services *service.Services, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		services: services,
		log:      log.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/notifications, optionally filtered by ?read
func (h *NotificationHandler) List(c *gin.Context) {
	var read *bool
	if raw := c.Query("read"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err == nil {
			read = &value
		}
	}

	notifications, err := h.services.Notification.List(c.Request.Context(), identity(c).UserID, read)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list notifications")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Notification.MarkRead(c.Request.Context(), id, identity(c).UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read", "id": id})
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count, err := h.services.Notification.MarkAllRead(c.Request.Context(), identity(c).UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to mark notifications read")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	total, err := h.services.Notification.CountUnread(c.Request.Context(), identity(c).UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count notifications")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}
