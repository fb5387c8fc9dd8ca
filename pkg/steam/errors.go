package steam

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable      = errors.New("steam: service unavailable")
	ErrInvalidAssertion = errors.New("steam: invalid openid assertion")
	ErrPrivateProfile   = errors.New("steam: profile data is private")
	ErrMissingAPIKey    = errors.New("steam: api key is not configured")
)

// APIError is a non-200 reply from the Web API.
type APIError struct {
	Method     string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("steam: %s returned status %d", e.Method, e.StatusCode)
}

// Unwrap makes every APIError match ErrUnavailable.
func (e *APIError) Unwrap() error {
	return ErrUnavailable
}
