package models

import (
	"time"
)

// Confirmation statuses for dengue case reports
const (
	CaseStatusConfirmed = "confirmado"
	CaseStatusSuspected = "suspeito"
	CaseStatusDiscarded = "descartado"
)

// ValidCaseStatuses is the closed set of case statuses
var ValidCaseStatuses = map[string]bool{
	CaseStatusConfirmed: true,
	CaseStatusSuspected: true,
	CaseStatusDiscarded: true,
}

// Case is a geolocated dengue case report
type Case struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"user_id" db:"user_id"`
	UserName    *string   `json:"user_name,omitempty" db:"user_name"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Status      string    `json:"status" db:"status"`
	Description *string   `json:"description" db:"description"`
	ReportDate  string    `json:"report_date" db:"report_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CaseCreate is the body of POST /api/cases
type CaseCreate struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Status      string   `json:"status"`
	Description *string  `json:"description"`
	ReportDate  string   `json:"report_date"`
}

// CasePatch is the sparse body of PUT /api/cases/:id
type CasePatch struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Status      *string  `json:"status"`
	Description *string  `json:"description"`
	ReportDate  *string  `json:"report_date"`
}

// Empty reports whether no field is set
func (p *CasePatch) Empty() bool {
	return p.Latitude == nil && p.Longitude == nil && p.Status == nil &&
		p.Description == nil && p.ReportDate == nil
}

// CaseStats is one row of the per-status summary
type CaseStats struct {
	Status    string `json:"status"`
	Total     int    `json:"total"`
	Last7Days int    `json:"last_7_days"`
}
