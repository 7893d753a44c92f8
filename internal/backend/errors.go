package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
)

const (
	// ErrBaseURLMissing is reported when no API base URL is configured.
	ErrBaseURLMissing = "API base URL is not configured."
	// FallbackErrorMessage is used when neither the payload nor the status line carry a message.
	FallbackErrorMessage = "Unexpected API error"

	// messageExpr picks the failure envelope's message fields in precedence order.
	messageExpr = "[error, msg]"
)

// ConfigError means the call was never attempted because configuration is missing.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
	// Payload is the parsed JSON body, nil when absent or unparsable.
	Payload any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// TransportError wraps a failure to reach the backend at all.
type TransportError struct {
	Method string
	Route  string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s %s: %v", e.Method, e.Route, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// errorMessage resolves the message for a failed call: the payload's error
// field, else its msg field, else the status text, else the generic fallback.
// A present but empty error field short-circuits to the fallback.
func errorMessage(payload any, statusText string) string {
	message := statusText
	if payload != nil {
		if v, err := jmespath.Search(messageExpr, payload); err == nil {
			if fields, ok := v.([]any); ok {
				for _, f := range fields {
					if f == nil {
						continue
					}
					message = stringify(f)
					break
				}
			}
		}
	}
	if message == "" {
		return FallbackErrorMessage
	}
	return message
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// PayloadString returns a top-level string field of the failure payload.
func (e *APIError) PayloadString(field string) (string, bool) {
	m, ok := e.Payload.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := m[field].(string)
	return s, ok
}

// StatusOf returns the HTTP status of an *APIError in err's chain, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Translate converts a client error into an application error. Backend
// messages are kept verbatim; transport failures use fallback. Context
// cancellation is returned unchanged so callers can drop the result.
func Translate(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return apperrors.Wrap(err, apperrors.ErrCodeConfiguration, cfgErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, fallback)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return apperrors.Wrap(err, codeForStatus(apiErr.Status), msg)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeBackend, fallback)
}

func codeForStatus(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return apperrors.ErrCodeUnauthenticated
	case http.StatusForbidden:
		return apperrors.ErrCodeForbidden
	case http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	default:
		return apperrors.ErrCodeBackend
	}
}
