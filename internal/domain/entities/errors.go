package entities

import (
	"net/http"
)

// ErrorType classifies a request failure; each type maps to one HTTP status.
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION"
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"
	ErrorTypeUpstream      ErrorType = "UPSTREAM"
)

// Error is a request failure that is rendered to the client as-is.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
}

func (e *Error) Error() string {
	return e.Message
}

// ValidationError reports a client input problem (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

// ConfigurationError reports a missing server-side setting (HTTP 500).
func ConfigurationError(message string) *Error {
	return &Error{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Code:    http.StatusInternalServerError,
	}
}

// UpstreamError reports a failed call to a remote API (HTTP 502).
func UpstreamError(message string) *Error {
	return &Error{
		Type:    ErrorTypeUpstream,
		Message: message,
		Code:    http.StatusBadGateway,
	}
}
