package binder

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrRequestTooLarge      = errors.New("request body too large")

	// ErrFailedToParseQuery also matches ErrFailedToParseForm.
	ErrFailedToParseQuery = fmt.Errorf("%w: query", ErrFailedToParseForm)
)
