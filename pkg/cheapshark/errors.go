package cheapshark

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("cheapshark: service unavailable")
	ErrInvalidReply = errors.New("cheapshark: reply is not valid JSON")
)

// StatusError is a non-200 reply.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cheapshark: unexpected status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnavailable
}
