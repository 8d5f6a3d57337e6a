package types

import (
	"errors"
	"fmt"
)

// Config errors.
var (
	ErrInvalidProviderID        = errors.New("invalid provider ID")
	ErrInvalidAPIHost           = errors.New("invalid API host")
	ErrMissingAPIKey            = errors.New("missing API key")
	ErrMissingBasicAuthPassword = errors.New("missing basic auth password")
	ErrProviderNotFound         = errors.New("provider not found")
)

// ErrEmptyQuery is returned before any request is sent.
var ErrEmptyQuery = errors.New("empty search query")

// ProviderError is a failed search call. StatusCode is zero when no HTTP
// response was received.
type ProviderError struct {
	Provider   ProviderID
	Code       string
	StatusCode int
	Message    string
	Err        error
}

// NewRequestError wraps a transport failure.
func NewRequestError(provider ProviderID, err error) *ProviderError {
	return &ProviderError{Provider: provider, Code: "REQUEST_FAILED", Message: "request failed", Err: err}
}

// NewStatusError records a non-200 response.
func NewStatusError(provider ProviderID, status int, body string) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Code:       fmt.Sprintf("HTTP_%d", status),
		StatusCode: status,
		Message:    body,
	}
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("websearch %s: %s", e.Provider, e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
