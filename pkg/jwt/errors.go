package jwt

import "errors"

var (
	ErrExpiredToken      = errors.New("jwt: token is expired")
	ErrMalformedToken    = errors.New("jwt: token is malformed")
	ErrInvalidSignature  = errors.New("jwt: invalid signature")
	ErrMissingToken      = errors.New("jwt: token is missing")
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrInvalidTTL        = errors.New("jwt: token lifetime out of range")
)
