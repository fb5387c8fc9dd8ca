package account

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/file"
	"github.com/JhonRainbow6/WebProject/pkg/validator"
)

var ErrInvalidConfig = errors.New("account: invalid config")

var (
	ErrEmailTaken         = handler.NewHTTPError(http.StatusConflict, "email_taken", "Email is already registered")
	ErrLoginFailed        = handler.NewHTTPError(http.StatusBadRequest, "invalid_credentials", "Invalid email or password")
	ErrWrongPassword      = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials", "Current password is incorrect")
	ErrUserGone           = handler.NewHTTPError(http.StatusNotFound, "user_not_found", "User not found")
	ErrInvalidExchange    = handler.NewHTTPError(http.StatusUnauthorized, "invalid_code", "Code is invalid or already used")
	ErrProviderDown       = handler.NewHTTPError(http.StatusBadGateway, "provider_unavailable", "Identity provider unavailable")
	ErrImageStorageFailed = handler.NewHTTPError(http.StatusInternalServerError, "image_storage_failed", "Could not store the image")
)

// credentialsError picks the status for ErrInvalidCredentials.
type credentialsError int

const (
	onLogin credentialsError = iota
	onChangePassword
)

// mapError turns service errors into HTTP errors. Validation errors pass
// through untouched so the error handler renders their fields.
func mapError(err error, where credentialsError) error {
	switch {
	case err == nil:
		return nil
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return ErrEmailTaken.Wrap(err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		if where == onChangePassword {
			return ErrWrongPassword.Wrap(err)
		}
		return ErrLoginFailed.Wrap(err)
	case errors.Is(err, auth.ErrUnauthorized):
		return handler.ErrUnauthorized.Wrap(err)
	case errors.Is(err, auth.ErrUserNotFound):
		return ErrUserGone.Wrap(err)
	case errors.Is(err, auth.ErrInvalidCode):
		return ErrInvalidExchange.Wrap(err)
	case errors.Is(err, auth.ErrProviderUnavailable):
		return ErrProviderDown.Wrap(err)
	}
	return handler.ErrInternalServerError.Wrap(err)
}

// imageError reports upload problems against the profileImage field.
// maxSize is the configured limit in bytes.
func imageError(err error, maxSize int64) error {
	ve := validator.ValidationError{Field: "profileImage"}
	switch {
	case errors.Is(err, file.ErrFileTooLarge):
		ve.Rule, ve.Message = validator.RuleTooLong, "image must be at most "+formatSize(maxSize)
	case errors.Is(err, file.ErrMIMETypeNotAllowed):
		ve.Rule, ve.Message = validator.RuleNotAllowed, "only JPEG and PNG images are allowed"
	case errors.Is(err, file.ErrEmptyFile), errors.Is(err, file.ErrNilFileHeader):
		ve.Rule, ve.Message = validator.RuleRequired, "an image file is required"
	default:
		return ErrImageStorageFailed.Wrap(err)
	}
	return validator.ValidationErrors{ve}
}

func formatSize(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	switch {
	case n >= mb && n%mb == 0:
		return fmt.Sprintf("%d MB", n/mb)
	case n >= kb && n%kb == 0:
		return fmt.Sprintf("%d KB", n/kb)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
