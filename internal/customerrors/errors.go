package customerrors

import (
	"errors"
	"fmt"

	"github.com/dengue-surveillance-api/internal/models"
)

// Error is an application error carrying its HTTP status code
type Error struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Details []models.FieldError `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

var (
	ErrMissingToken       = &Error{Code: 401, Message: "authorization token required"}
	ErrInvalidToken       = &Error{Code: 401, Message: "invalid or expired token"}
	ErrInvalidCredentials = &Error{Code: 401, Message: "invalid email or password"}
	ErrForbidden          = &Error{Code: 403, Message: "access denied"}
	ErrEmailAlreadyExists = &Error{Code: 409, Message: "email already registered"}

	ErrSightingNotFound     = &Error{Code: 404, Message: "sighting not found"}
	ErrRiskAreaNotFound     = &Error{Code: 404, Message: "risk area not found"}
	ErrCaseNotFound         = &Error{Code: 404, Message: "case not found"}
	ErrNotificationNotFound = &Error{Code: 404, Message: "notification not found"}

	ErrBadRequest     = &Error{Code: 400, Message: "bad request"}
	ErrInternalServer = &Error{Code: 500, Message: "internal server error"}
)

// NewValidation builds a 400 error from field-level failures
func NewValidation(details []models.FieldError) *Error {
	return &Error{Code: 400, Message: "validation failed", Details: details}
}

// GetStatus maps an error to its HTTP status code
func GetStatus(err error) int {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return 500
}

// GetMessage returns the client-safe message for an error. Unknown errors
// collapse to a generic message so internals never leak.
func GetMessage(err error) string {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return ErrInternalServer.Message
}

// GetDetails returns field-level failures if the error carries any
func GetDetails(err error) []models.FieldError {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Details
	}
	return nil
}
