package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dengue-surveillance-api/internal/models"
)

// A user sees notifications addressed to them plus broadcasts (NULL user_id).
const notificationVisible = "(user_id IS NULL OR user_id = $1)"

// notificationListLimit caps how many notifications a single list returns
const notificationListLimit = 50

// notificationRepo is the concrete implementation of NotificationRepository
type notificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo creates a new notification repository
func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

// Create inserts a notification and fills server-assigned fields
func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (category, title, body, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, read, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		n.Category, n.Title, n.Body, n.UserID,
	).Scan(&n.ID, &n.Read, &n.CreatedAt)
}

// ListForUser returns the notifications visible to a user, newest first,
// optionally filtered by read state
func (r *notificationRepo) ListForUser(ctx context.Context, userID int64, read *bool) ([]*models.Notification, error) {
	query := `
		SELECT id, category, title, COALESCE(body, ''), user_id, read, created_at
		FROM notifications
		WHERE ` + notificationVisible
	args := []interface{}{userID}

	if read != nil {
		query += " AND read = $2"
		args = append(args, *read)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", notificationListLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Category, &n.Title, &n.Body, &n.UserID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkRead flips a visible notification to read. The read flag only ever
// moves unread -> read.
func (r *notificationRepo) MarkRead(ctx context.Context, id, userID int64) (int64, error) {
	query := `UPDATE notifications SET read = TRUE WHERE id = $2 AND ` + notificationVisible

	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkAllRead marks every unread visible notification as read and returns
// how many were affected
func (r *notificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET read = TRUE WHERE ` + notificationVisible + ` AND read = FALSE`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountUnread counts unread visible notifications
func (r *notificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE ` + notificationVisible + ` AND read = FALSE`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}
