package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError maps a failure to a status code and a stable machine key.
// Message is safe to show to clients; Err is the cause and is only logged.
type HTTPError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e HTTPError) Unwrap() error {
	return e.Err
}

// PublicMessage returns Message, falling back to the status text.
func (e HTTPError) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Code)
}

// WithMessage returns a copy with a client-facing message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

// Wrap returns a copy that records err as the cause.
func (e HTTPError) Wrap(err error) HTTPError {
	e.Err = err
	return e
}

// NewHTTPError creates an HTTPError with the given status code, key and message.
func NewHTTPError(code int, key, message string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: message}
}

var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "bad_request", Message: "Invalid request"}
	ErrUnauthorized          = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized", Message: "Authentication required"}
	ErrForbidden             = HTTPError{Code: http.StatusForbidden, Key: "forbidden", Message: "Access denied"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "not_found", Message: "Not found"}
	ErrConflict              = HTTPError{Code: http.StatusConflict, Key: "conflict", Message: "Already exists"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large", Message: "Request body too large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type", Message: "Unsupported media type"}
	ErrInternalServerError   = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error", Message: "Internal server error"}
	ErrBadGateway            = HTTPError{Code: http.StatusBadGateway, Key: "bad_gateway", Message: "Upstream service unavailable"}
)
