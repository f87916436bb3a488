package models

import (
	"time"
)

// NotificationRiskArea tags notifications generated by risk-area declarations
const NotificationRiskArea = "risk_area"

// Notification is a system-generated alert. A nil UserID means the
// notification is visible to every authenticated user.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	Category  string    `json:"category" db:"category"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	UserID    *int64    `json:"user_id" db:"user_id"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
