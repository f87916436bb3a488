package service

import (
	"context"
	"fmt"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/realtime"
	"github.com/dengue-surveillance-api/internal/repository"
	"github.com/rs/zerolog"
)

// notificationService implements NotificationService. It is both the
// dispatcher (persist + fan out) and the read-state API.
type notificationService struct {
	notifications repository.NotificationRepository
	hub           *realtime.Hub
	log           zerolog.Logger
}

func newNotificationService(notifications repository.NotificationRepository, hub *realtime.Hub, log zerolog.Logger) *notificationService {
	return &notificationService{
		notifications: notifications,
		hub:           hub,
		log:           log.With().Str("service", "notification").Logger(),
	}
}

// NotifyRiskArea persists one broadcast notification for a high-severity
// risk area, then pushes the event to all connected clients. Push is
// at-most-once: clients that are not connected miss it and fall back to
// polling the unread count.
func (s *notificationService) NotifyRiskArea(ctx context.Context, area *models.RiskArea) error {
	title := "Nova Área de Alto Risco Identificada"
	body := fmt.Sprintf("Uma nova área de alto risco foi cadastrada em %.4f, %.4f", area.Latitude, area.Longitude)

	n := &models.Notification{
		Category: models.NotificationRiskArea,
		Title:    title,
		Body:     body,
		UserID:   nil, // broadcast: visible to every authenticated user
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	s.hub.Broadcast(realtime.Event{
		Name: realtime.EventNewRiskArea,
		Data: realtime.RiskAreaEvent{
			ID:        area.ID,
			Latitude:  area.Latitude,
			Longitude: area.Longitude,
			Severity:  area.Severity,
			Title:     title,
			Body:      body,
		},
	})

	s.log.Info().Int64("area_id", area.ID).Int64("notification_id", n.ID).Msg("Risk-area notification dispatched")
	return nil
}

// List returns the notifications visible to a user
func (s *notificationService) List(ctx context.Context, userID int64, read *bool) ([]*models.Notification, error) {
	return s.notifications.ListForUser(ctx, userID, read)
}

// MarkRead marks one visible notification as read
func (s *notificationService) MarkRead(ctx context.Context, id, userID int64) error {
	rows, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("Failed to mark notification read")
		return err
	}
	if rows == 0 {
		return customerrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread visible notification as read
func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// CountUnread counts unread visible notifications
func (s *notificationService) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}
