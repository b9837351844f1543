package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorSeverity indicates the severity of an error for UI presentation.
type ErrorSeverity int

const (
	SeverityInfo    ErrorSeverity = iota // User should know, not blocking
	SeverityWarning                      // Degraded functionality
	SeverityError                        // Operation failed, can retry
	SeverityFatal                        // Application must exit
)

// String returns the lowercase severity name.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// UIError wraps an error with UI-friendly presentation metadata.
type UIError struct {
	Err      error
	Severity ErrorSeverity
	Title    string   // Short user-facing title
	Message  string   // Detailed user-facing message
	Recovery []string // Suggested actions (bullet points)
	Details  string   // Technical details
}

func (e UIError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Title
}

// Unwrap returns the underlying error.
func (e UIError) Unwrap() error {
	return e.Err
}

// ClassifyError converts an error into a UIError with appropriate
// severity, title, message, and recovery suggestions.
func ClassifyError(err error) *UIError {
	if err == nil {
		return nil
	}

	var uiErr *UIError
	if errors.As(err, &uiErr) {
		return uiErr
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return classifyStatus(err, statusErr)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Request Timeout",
			Message:  "The server took too long to respond.",
			Recovery: []string{"Try again"},
		}

	case errors.Is(err, context.Canceled), errors.Is(err, ErrUserCancelled):
		return &UIError{
			Err:      err,
			Severity: SeverityInfo,
			Title:    "Cancelled",
			Message:  "The operation was cancelled.",
			Recovery: []string{},
		}

	case errors.Is(err, ErrTransport):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Failed",
			Message:  "Unable to reach the library server.",
			Recovery: []string{
				"Check that the server is running",
				"Verify the dashboard location",
				"Check your network connection",
			},
			Details: err.Error(),
		}

	case errors.Is(err, ErrDecode):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Invalid Response",
			Message:  "The server did not return a JSON listing.",
			Recovery: []string{"Check that the location points at a library server"},
			Details:  err.Error(),
		}

	case errors.Is(err, ErrInvalidLocation):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Invalid Location",
			Message:  "The dashboard location is not an absolute URL.",
			Recovery: []string{"Use a location such as http://localhost:8080/en/dashboard/"},
			Details:  err.Error(),
		}
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Validation Error",
			Message:  validationErr.Message,
			Recovery: []string{"Correct the field value and try again"},
			Details:  validationErr.Error(),
		}
	}

	return &UIError{
		Err:      err,
		Severity: SeverityError,
		Title:    "Unexpected Error",
		Message:  "An unexpected error occurred.",
		Recovery: []string{"Try again"},
		Details:  err.Error(),
	}
}

func classifyStatus(err error, st *StatusError) *UIError {
	details := fmt.Sprintf("HTTP %d %s", st.Code, http.StatusText(st.Code))
	if st.URL != "" {
		details += " (" + st.URL + ")"
	}

	switch {
	case st.Code == http.StatusNotFound:
		return &UIError{
			Err:      err,
			Severity: SeverityWarning,
			Title:    "Not Found",
			Message:  "The requested path does not exist on the server.",
			Recovery: []string{"Check the path", "Check the locale segment of the location"},
			Details:  details,
		}

	case st.Code == http.StatusUnauthorized, st.Code == http.StatusForbidden:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Access Denied",
			Message:  "The server refused to list this path.",
			Recovery: []string{"Sign in to the library in a browser first"},
			Details:  details,
		}

	case st.Code >= 500:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Server Error",
			Message:  "The library server failed to produce a listing.",
			Recovery: []string{"Try again", "Check the server logs"},
			Details:  details,
		}

	default:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Request Failed",
			Message:  "The server rejected the listing request.",
			Recovery: []string{"Try again"},
			Details:  details,
		}
	}
}
