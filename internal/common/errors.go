// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ---------------------------------------------------------------------------
// Client-side error taxonomy.
//
// Everything here is locally recoverable: the auth flow returns to its
// pre-submission state and the caller may retry. No partial session is ever
// established on any of these paths.
// ---------------------------------------------------------------------------

// FieldErrors is a field-scoped validation failure. It is raised before any
// gateway request is issued; an input that produces FieldErrors never
// reaches the network.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// AuthRejected signals that the gateway understood the request and refused
// it: invalid credentials, or an invalid/expired OTP.
type AuthRejected struct {
	Reason string
}

func (e *AuthRejected) Error() string {
	if e.Reason == "" {
		return "authentication rejected"
	}
	return "authentication rejected: " + e.Reason
}

// TransportFailure signals the gateway could not be reached or did not
// answer in time. State handling is identical to AuthRejected, but callers
// surface it with a distinct "try again" message.
type TransportFailure struct {
	Err error
}

func (e *TransportFailure) Error() string {
	if e.Err == nil {
		return "gateway unreachable"
	}
	return "gateway unreachable: " + e.Err.Error()
}

func (e *TransportFailure) Unwrap() error { return e.Err }

// ErrTokenExpired is returned by the authenticated transport after the
// gateway rejects the persisted bearer token. By the time the caller sees
// it the session has already been cleared.
var ErrTokenExpired = errors.New("session token expired or rejected")

// ErrBusy is returned when a submission is attempted while another one is
// still in flight on the same controller. The in-flight request is not
// duplicated; the caller may retry once it completes.
var ErrBusy = errors.New("a submission is already in flight")

// IsRecoverable reports whether err leaves the flow able to retry in place
// (as opposed to the forced logout of ErrTokenExpired).
func IsRecoverable(err error) bool {
	var fe FieldErrors
	var ar *AuthRejected
	var tf *TransportFailure
	return errors.As(err, &fe) || errors.As(err, &ar) || errors.As(err, &tf) || errors.Is(err, ErrBusy)
}

// ---------------------------------------------------------------------------
// Gateway-side API errors (JSON wire shape used by the dev gateway).
// ---------------------------------------------------------------------------

// APIError represents a standard structure for API errors.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

func (e *APIError) WithDetails(details interface{}) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Message: e.Message, Details: details}
}

var (
	ErrBadRequest     = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrUnauthorized   = NewAPIError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required and has failed or has not yet been provided.")
	ErrNotFound       = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrConflict       = NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")
	ErrInternalServer = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred on the server.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewValidationAPIError(details interface{}) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    "Input validation failed.",
		Details:    details,
	}
}

// FormatValidationErrors converts validator.ValidationErrors into a map.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMap := make(map[string]string)
	for _, e := range errs {
		field := e.Field()
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("The %s field is required.", strings.ToLower(field))
		case "email":
			message = fmt.Sprintf("The %s field must be a valid email address.", strings.ToLower(field))
		case "min":
			message = fmt.Sprintf("The %s field must be at least %s characters long.", strings.ToLower(field), e.Param())
		case "max":
			message = fmt.Sprintf("The %s field may not be greater than %s characters.", strings.ToLower(field), e.Param())
		case "len":
			message = fmt.Sprintf("The %s field must be exactly %s characters long.", strings.ToLower(field), e.Param())
		case "numeric":
			message = fmt.Sprintf("The %s field may only contain digits.", strings.ToLower(field))
		case "oneof":
			message = fmt.Sprintf("The %s field must be one of the following values: %s.", strings.ToLower(field), e.Param())
		case "eqfield":
			message = fmt.Sprintf("The %s field must match the %s field.", strings.ToLower(field), strings.ToLower(e.Param()))
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", field, e.Tag())
		}
		errorMap[field] = message
	}
	return errorMap
}
