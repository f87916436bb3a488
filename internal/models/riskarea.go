package models

import (
	"time"
)

// Severity tiers for risk areas. Wire values keep the field-protocol terms.
const (
	SeverityHigh   = "alto"
	SeverityMedium = "medio"
	SeverityLow    = "baixo"
)

// ValidSeverities is the closed set of risk-area severities
var ValidSeverities = map[string]bool{
	SeverityHigh:   true,
	SeverityMedium: true,
	SeverityLow:    true,
}

// DefaultRadiusMeters is used when a risk area is declared without a radius
const DefaultRadiusMeters = 500

// RiskArea is a geofenced declaration of elevated transmission risk
type RiskArea struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"user_id" db:"user_id"`
	UserName    *string   `json:"user_name,omitempty" db:"user_name"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Severity    string    `json:"severity" db:"severity"`
	Radius      int       `json:"radius" db:"radius"`
	Description *string   `json:"description" db:"description"`
	ReportDate  string    `json:"report_date" db:"report_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RiskAreaCreate is the body of POST /api/risk-areas
type RiskAreaCreate struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Severity    string   `json:"severity"`
	Radius      *int     `json:"radius"`
	Description *string  `json:"description"`
	ReportDate  string   `json:"report_date"`
}

// RiskAreaPatch is the sparse body of PUT /api/risk-areas/:id
type RiskAreaPatch struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Severity    *string  `json:"severity"`
	Radius      *int     `json:"radius"`
	Description *string  `json:"description"`
	ReportDate  *string  `json:"report_date"`
}

// Empty reports whether no field is set
func (p *RiskAreaPatch) Empty() bool {
	return p.Latitude == nil && p.Longitude == nil && p.Severity == nil &&
		p.Radius == nil && p.Description == nil && p.ReportDate == nil
}
