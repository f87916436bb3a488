package validation

import (
	"regexp"

	"github.com/dengue-surveillance-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength is the minimum accepted password length on registration
const MinPasswordLength = 6

// ValidateLogin validates a login request
func ValidateLogin(req *models.LoginRequest) []models.FieldError {
	var errors []models.FieldError

	if req.Email == "" {
		errors = append(errors, models.FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(req.Email) {
		errors = append(errors, models.FieldError{Field: "email", Message: "invalid email format", Value: req.Email})
	}

	if req.Password == "" {
		errors = append(errors, models.FieldError{Field: "password", Message: "password is required"})
	}

	return errors
}

// ValidateRegister validates a registration request
func ValidateRegister(req *models.RegisterRequest) []models.FieldError {
	var errors []models.FieldError

	if req.Name == "" {
		errors = append(errors, models.FieldError{Field: "name", Message: "name is required"})
	}

	if req.Email == "" {
		errors = append(errors, models.FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(req.Email) {
		errors = append(errors, models.FieldError{Field: "email", Message: "invalid email format", Value: req.Email})
	}

	if len(req.Password) < MinPasswordLength {
		errors = append(errors, models.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}

	if req.Role == "" {
		errors = append(errors, models.FieldError{Field: "role", Message: "role is required"})
	} else if !models.ValidRoles[req.Role] {
		errors = append(errors, models.FieldError{Field: "role", Message: "role must be one of: admin, operator, viewer", Value: string(req.Role)})
	}

	return errors
}

// ValidateSightingCreate validates a new sighting
func ValidateSightingCreate(req *models.SightingCreate) []models.FieldError {
	errors := validateCoordinates(req.Latitude, req.Longitude)

	if req.Category == "" {
		errors = append(errors, models.FieldError{Field: "category", Message: "category is required"})
	} else if !models.ValidCategories[req.Category] {
		errors = append(errors, models.FieldError{Field: "category", Message: "unknown deposit category", Value: req.Category})
	}

	if req.Source != "" && !models.ValidSources[req.Source] {
		errors = append(errors, models.FieldError{Field: "source", Message: "source must be one of: inspection, citizen-report", Value: req.Source})
	}

	if req.ReportDate == "" {
		errors = append(errors, models.FieldError{Field: "report_date", Message: "report_date is required"})
	}

	return errors
}

// ValidateSightingPatch validates a sparse sighting update
func ValidateSightingPatch(p *models.SightingPatch) []models.FieldError {
	if p.Empty() {
		return []models.FieldError{{Field: "body", Message: "at least one field must be provided"}}
	}

	errors := validateOptionalCoordinates(p.Latitude, p.Longitude)

	if p.Category != nil && !models.ValidCategories[*p.Category] {
		errors = append(errors, models.FieldError{Field: "category", Message: "unknown deposit category", Value: *p.Category})
	}
	if p.Source != nil && !models.ValidSources[*p.Source] {
		errors = append(errors, models.FieldError{Field: "source", Message: "source must be one of: inspection, citizen-report", Value: *p.Source})
	}
	if p.ReportDate != nil && *p.ReportDate == "" {
		errors = append(errors, models.FieldError{Field: "report_date", Message: "report_date cannot be empty"})
	}

	return errors
}

// ValidateRiskAreaCreate validates a new risk area
func ValidateRiskAreaCreate(req *models.RiskAreaCreate) []models.FieldError {
	errors := validateCoordinates(req.Latitude, req.Longitude)

	if req.Severity == "" {
		errors = append(errors, models.FieldError{Field: "severity", Message: "severity is required"})
	} else if !models.ValidSeverities[req.Severity] {
		errors = append(errors, models.FieldError{Field: "severity", Message: "severity must be one of: alto, medio, baixo", Value: req.Severity})
	}

	if req.Radius != nil && *req.Radius <= 0 {
		errors = append(errors, models.FieldError{Field: "radius", Message: "radius must be positive", Value: *req.Radius})
	}

	if req.ReportDate == "" {
		errors = append(errors, models.FieldError{Field: "report_date", Message: "report_date is required"})
	}

	return errors
}

// ValidateRiskAreaPatch validates a sparse risk-area update
func ValidateRiskAreaPatch(p *models.RiskAreaPatch) []models.FieldError {
	if p.Empty() {
		return []models.FieldError{{Field: "body", Message: "at least one field must be provided"}}
	}

	errors := validateOptionalCoordinates(p.Latitude, p.Longitude)

	if p.Severity != nil && !models.ValidSeverities[*p.Severity] {
		errors = append(errors, models.FieldError{Field: "severity", Message: "severity must be one of: alto, medio, baixo", Value: *p.Severity})
	}
	if p.Radius != nil && *p.Radius <= 0 {
		errors = append(errors, models.FieldError{Field: "radius", Message: "radius must be positive", Value: *p.Radius})
	}
	if p.ReportDate != nil && *p.ReportDate == "" {
		errors = append(errors, models.FieldError{Field: "report_date", Message: "report_date cannot be empty"})
	}

	return errors
}

// ValidateCaseCreate validates a new case report
func ValidateCaseCreate(req *models.CaseCreate) []models.FieldError {
	errors := validateCoordinates(req.Latitude, req.Longitude)

	if req.Status == "" {
		errors = append(errors, models.FieldError{Field: "status", Message: "status is required"})
	} else if !models.ValidCaseStatuses[req.Status] {
		errors = append(errors, models.FieldError{Field: "status", Message: "status must be one of: confirmado, suspeito, descartado", Value: req.Status})
	}

	if req.ReportDate == "" {
		errors = append(errors, models.FieldError{Field: "report_date", Message: "report_date is required"})
	}

	return errors
}

// ValidateCasePatch validates a sparse case update
func ValidateCasePatch(p *models.CasePatch) []models.FieldError {
	if p.Empty() {
		return []models.FieldError{{Field: "body", Message: "at least one field must be provided"}}
	}

	errors := validateOptionalCoordinates(p.Latitude, p.Longitude)

	if p.Status != nil && !models.ValidCaseStatuses[*p.Status] {
		errors = append(errors, models.FieldError{Field: "status", Message: "status must be one of: confirmado, suspeito, descartado", Value: *p.Status})
	}
	if p.ReportDate != nil && *p.ReportDate == "" {
		errors = append(errors, models.FieldError{Field: "report_date", Message: "report_date cannot be empty"})
	}

	return errors
}

func validateCoordinates(lat, lon *float64) []models.FieldError {
	var errors []models.FieldError

	if lat == nil {
		errors = append(errors, models.FieldError{Field: "latitude", Message: "latitude is required"})
	} else if *lat < -90 || *lat > 90 {
		errors = append(errors, models.FieldError{Field: "latitude", Message: "latitude must be between -90 and 90", Value: *lat})
	}

	if lon == nil {
		errors = append(errors, models.FieldError{Field: "longitude", Message: "longitude is required"})
	} else if *lon < -180 || *lon > 180 {
		errors = append(errors, models.FieldError{Field: "longitude", Message: "longitude must be between -180 and 180", Value: *lon})
	}

	return errors
}

func validateOptionalCoordinates(lat, lon *float64) []models.FieldError {
	var errors []models.FieldError

	if lat != nil && (*lat < -90 || *lat > 90) {
		errors = append(errors, models.FieldError{Field: "latitude", Message: "latitude must be between -90 and 90", Value: *lat})
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		errors = append(errors, models.FieldError{Field: "longitude", Message: "longitude must be between -180 and 180", Value: *lon})
	}

	return errors
}
