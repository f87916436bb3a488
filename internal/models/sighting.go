package models

import (
	"time"
)

// Breeding-site deposit types from the national field protocol.
const (
	CategoryWaterTankCistern  = "caixa-dagua-cisterna"
	CategoryBucketDrum        = "balde-tambor"
	CategoryDisusedPool       = "piscina-desativada"
	CategoryTire              = "pneu"
	CategoryBottleCanPlastic  = "garrafa-lata-plastico"
	CategoryOpenAirGarbage    = "lixo-ceu-aberto"
	CategoryDiscardedObjects  = "objetos-em-desuso"
	CategoryStructuralWater   = "agua-parada-estrutura"
	CategoryPlantPotSaucer    = "vaso-planta-prato"
	CategoryAnimalWaterBowl   = "bebedouro-animal"
	CategoryDrainInspectionBox = "ralo-caixa-passagem"
	CategoryOther             = "outro"
)

// ValidCategories is the closed set of sighting deposit types
var ValidCategories = map[string]bool{
	CategoryWaterTankCistern:   true,
	CategoryBucketDrum:         true,
	CategoryDisusedPool:        true,
	CategoryTire:               true,
	CategoryBottleCanPlastic:   true,
	CategoryOpenAirGarbage:     true,
	CategoryDiscardedObjects:   true,
	CategoryStructuralWater:    true,
	CategoryPlantPotSaucer:     true,
	CategoryAnimalWaterBowl:    true,
	CategoryDrainInspectionBox: true,
	CategoryOther:              true,
}

// Source of a sighting report
const (
	SourceInspection    = "inspection"
	SourceCitizenReport = "citizen-report"
)

// ValidSources is the closed set of report sources
var ValidSources = map[string]bool{
	SourceInspection:    true,
	SourceCitizenReport: true,
}

// Sighting is a field report of a mosquito breeding site
type Sighting struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"user_id" db:"user_id"`
	UserName    *string   `json:"user_name,omitempty" db:"user_name"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Category    string    `json:"category" db:"category"`
	Source      string    `json:"source" db:"source"`
	Description *string   `json:"description" db:"description"`
	ReportDate  string    `json:"report_date" db:"report_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SightingCreate is the body of POST /api/sightings.
// Coordinates are pointers so missing fields are distinguishable from zero.
type SightingCreate struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Category    string   `json:"category"`
	Source      string   `json:"source"`
	Description *string  `json:"description"`
	ReportDate  string   `json:"report_date"`
}

// SightingPatch is the sparse body of PUT /api/sightings/:id.
// Only non-nil fields are applied.
type SightingPatch struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Category    *string  `json:"category"`
	Source      *string  `json:"source"`
	Description *string  `json:"description"`
	ReportDate  *string  `json:"report_date"`
}

// Empty reports whether no field is set
func (p *SightingPatch) Empty() bool {
	return p.Latitude == nil && p.Longitude == nil && p.Category == nil &&
		p.Source == nil && p.Description == nil && p.ReportDate == nil
}
