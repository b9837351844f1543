package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for listing failures. Callers of the callback-style API
// never see these; they are exposed for diagnostics and the CLI.
var (
	ErrTransport       = errors.New("transport failure")
	ErrDecode          = errors.New("response is not valid JSON")
	ErrInvalidLocation = errors.New("invalid location")
	ErrUserCancelled   = errors.New("user cancelled operation")
)

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// ValidationError represents a field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
