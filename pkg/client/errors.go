package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx HTTP response from the portal backend.
// For validation failures (422) Errors carries the server's field-level
// messages keyed by field name.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// FieldError returns the first server-provided message for a field, or
// "" when the field has none. Views use it to annotate form inputs.
func (e *APIError) FieldError(field string) string {
	if msgs := e.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// IsStatus returns true if err (or any wrapped error) is an APIError
// with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsUnauthorized reports an authentication failure (401). By the time a
// caller sees one, the session token has already been cleared and the
// session-invalidated signal fired.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsValidation reports a validation failure (422); the calling view
// surfaces the field messages inline.
func IsValidation(err error) bool {
	return IsStatus(err, http.StatusUnprocessableEntity)
}

// AsAPIError unwraps err into an *APIError, or nil if it is not one
// (e.g. a transport failure that never produced a response).
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
