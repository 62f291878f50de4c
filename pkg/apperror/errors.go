package apperror

import (
	"errors"
	"net/http"

	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid username or password"}
	ErrNoAccount          = &AppError{Code: http.StatusConflict, Message: "No bank account configured"}
	ErrSlipUnavailable    = &AppError{Code: http.StatusConflict, Message: "Payment slip is not available for this order"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// FromSlipError maps payment slip build and render failures to AppErrors.
// Other errors are returned unchanged.
func FromSlipError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, upn.ErrMissingAccount) {
		return ErrNoAccount
	}

	var invalid *upn.InvalidOrderDataError
	if errors.As(err, &invalid) {
		fields := make([]FieldError, 0, len(invalid.Fields))
		for _, f := range invalid.Fields {
			fields = append(fields, FieldError{Field: f, Message: "is required"})
		}
		return &AppError{
			Code:    http.StatusUnprocessableEntity,
			Message: "Order is missing payment slip data",
			Errors:  fields,
		}
	}

	var tmplErr *upn.TemplateError
	if errors.As(err, &tmplErr) {
		return NewAppError(http.StatusInternalServerError, "Payment slip template is misconfigured")
	}

	var renderErr *upn.RenderError
	if errors.As(err, &renderErr) {
		return NewAppError(http.StatusBadGateway, "Payment slip image could not be rendered")
	}
	return err
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
