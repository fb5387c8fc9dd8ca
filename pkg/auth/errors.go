package auth

import "errors"

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Storage errors
var (
	ErrDuplicateKey = errors.New("duplicate key")
)

// Provider errors
var (
	ErrInvalidState           = errors.New("invalid OAuth state")
	ErrInvalidCode            = errors.New("invalid or expired code")
	ErrInvalidProviderProfile = errors.New("provider returned an incomplete profile")
	ErrInvalidProviderID      = errors.New("provider does not know this account id")
	ErrProviderRejected       = errors.New("provider assertion rejected")
	ErrProviderUnavailable    = errors.New("provider unavailable")
	ErrProviderAlreadyLinked  = errors.New("provider account already linked to another user")
	ErrSteamNotLinked         = errors.New("no steam account linked")
)

// DuplicateKeyError reports which unique field collided.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return ErrDuplicateKey.Error()
	}
	return ErrDuplicateKey.Error() + ": " + e.Field
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// DuplicateField returns the colliding field of a duplicate key error, or "".
func DuplicateField(err error) string {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Field
	}
	return ""
}
