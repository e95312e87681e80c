package tidycal

import "fmt"

// APIError is a non-2xx response mapped to a status-specific message.
// It passes through the error normalization boundary unchanged, so callers
// always see the original status and message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// genericAPIError is the fallback when no specific mapping exists for a
// (status, operation) pair.
func genericAPIError(operation string, status int) *APIError {
	return &APIError{
		Status:  status,
		Message: fmt.Sprintf("API Error in %s: %d - %s", operation, status, statusText(status)),
	}
}

// ValidationError is raised before any request is sent. The message names
// the offending field and the violated constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("missing required field: '%s'", field)}
}
