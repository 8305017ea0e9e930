package errorx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryAuthorization ErrorCategory = "authorization"
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryTransition    ErrorCategory = "invalid_transition"
	CategoryPricing       ErrorCategory = "pricing"
	CategoryInternal      ErrorCategory = "internal"
)

// Severity represents the severity level of an error
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// APIError represents a structured error with a stable code and HTTP mapping
type APIError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Category   ErrorCategory  `json:"category"`
	Severity   Severity       `json:"severity"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.Message)
}

// Is reports whether target is an APIError with the same code, so wrapped
// copies produced by WithDetail still match their sentinel via errors.Is.
func (e *APIError) Is(target error) bool {
	var other *APIError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// JSON returns the error as a JSON string
func (e *APIError) JSON() string {
	out, _ := json.Marshal(e)
	return string(out)
}

// WithDetail returns a copy of the error with the given detail attached.
// The receiver is never mutated; sentinels stay shared-safe.
func (e *APIError) WithDetail(key string, value any) *APIError {
	clone := *e
	clone.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// WithMessage returns a copy of the error with a more specific message.
func (e *APIError) WithMessage(format string, args ...any) *APIError {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

var (
	// Validation errors (E1000-E1999)
	ErrInvalidInput = &APIError{
		Code:       "E1001",
		Message:    "Invalid input provided",
		Category:   CategoryValidation,
		Severity:   SeverityError,
		HTTPStatus: http.StatusBadRequest,
	}

	// Authorization errors (E2000-E2999)
	ErrForbidden = &APIError{
		Code:       "E2001",
		Message:    "Operation requires admin privileges",
		Category:   CategoryAuthorization,
		Severity:   SeverityError,
		HTTPStatus: http.StatusForbidden,
	}

	// Not-found errors (E3000-E3999). Tenant-isolation denials are surfaced
	// with the same code as a genuine miss so existence never leaks across
	// tenants.
	ErrAnalysisNotFound = &APIError{
		Code:       "E3001",
		Message:    "Analysis not found",
		Category:   CategoryNotFound,
		Severity:   SeverityError,
		HTTPStatus: http.StatusNotFound,
	}

	ErrVersionNotFound = &APIError{
		Code:       "E3002",
		Message:    "Analysis version not found",
		Category:   CategoryNotFound,
		Severity:   SeverityError,
		HTTPStatus: http.StatusNotFound,
	}

	ErrTenantNotFound = &APIError{
		Code:       "E3003",
		Message:    "Tenant not found",
		Category:   CategoryNotFound,
		Severity:   SeverityError,
		HTTPStatus: http.StatusNotFound,
	}

	ErrPricingVersionNotFound = &APIError{
		Code:       "E3004",
		Message:    "No active pricing version for provider",
		Category:   CategoryNotFound,
		Severity:   SeverityError,
		HTTPStatus: http.StatusNotFound,
	}

	ErrUserNotFound = &APIError{
		Code:       "E3005",
		Message:    "User not found",
		Category:   CategoryNotFound,
		Severity:   SeverityError,
		HTTPStatus: http.StatusNotFound,
	}

	// Lifecycle errors (E4000-E4999)
	ErrInvalidTransition = &APIError{
		Code:       "E4001",
		Message:    "Operation not allowed in current analysis status",
		Category:   CategoryTransition,
		Severity:   SeverityError,
		HTTPStatus: http.StatusConflict,
	}

	// ErrAnalysisLocked is deliberately distinct from ErrAnalysisNotFound:
	// "exists but is locked" must be distinguishable from "doesn't exist or
	// isn't yours".
	ErrAnalysisLocked = &APIError{
		Code:       "E4002",
		Message:    "Analysis is locked and rejects all mutation",
		Category:   CategoryTransition,
		Severity:   SeverityError,
		HTTPStatus: http.StatusConflict,
	}

	// Pricing errors (E5000-E5999)
	// ErrPricingMiss is non-fatal: the computation continues with a zero
	// contribution for the missing line item.
	ErrPricingMiss = &APIError{
		Code:       "E5001",
		Message:    "Pricing entry not found for tier",
		Category:   CategoryPricing,
		Severity:   SeverityWarning,
		HTTPStatus: http.StatusOK,
	}

	// Internal errors (E9000-E9999)
	ErrInternal = &APIError{
		Code:       "E9001",
		Message:    "Internal server error",
		Category:   CategoryInternal,
		Severity:   SeverityError,
		HTTPStatus: http.StatusInternalServerError,
	}
)
