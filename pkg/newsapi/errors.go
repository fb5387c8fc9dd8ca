package newsapi

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable   = errors.New("newsapi: service unavailable")
	ErrInvalidReply  = errors.New("newsapi: reply is not valid JSON")
	ErrMissingAPIKey = errors.New("newsapi: api key is not configured")
)

// APIError is a non-200 reply. Code and Message come from the error body
// when NewsAPI sends one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("newsapi: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("newsapi: %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrUnavailable
}
