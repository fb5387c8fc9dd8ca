package account

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JhonRainbow6/WebProject/pkg/jwt"
)

// Redirect modes for the Google callback.
const (
	RedirectModeToken = "token"
	RedirectModeCode  = "code"
)

// Config holds the settings of the account module.
type Config struct {
	JWTSecret       string        `env:"JWT_SECRET,required"`
	JWTTTL          time.Duration `env:"JWT_TTL" envDefault:"1h"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"capgames"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	BackendURL      string        `env:"BACKEND_URL" envDefault:"http://localhost:5000"`
	CallbackPath    string        `env:"AUTH_CALLBACK_PATH" envDefault:"/auth/callback"`
	SteamResultPath string        `env:"STEAM_RESULT_PATH" envDefault:"/profile"`
	RedirectMode    string        `env:"AUTH_REDIRECT_MODE" envDefault:"token"`
	ExchangeCodeTTL time.Duration `env:"EXCHANGE_CODE_TTL" envDefault:"60s"`
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET is empty", ErrInvalidConfig)
	}
	if c.JWTTTL < jwt.MinTTL || c.JWTTTL > jwt.MaxTTL {
		return fmt.Errorf("%w: JWT_TTL must be between %s and %s", ErrInvalidConfig, jwt.MinTTL, jwt.MaxTTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: BCRYPT_COST must be between %d and %d", ErrInvalidConfig, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.RedirectMode != RedirectModeToken && c.RedirectMode != RedirectModeCode {
		return fmt.Errorf("%w: AUTH_REDIRECT_MODE must be %q or %q", ErrInvalidConfig, RedirectModeToken, RedirectModeCode)
	}
	if c.ExchangeCodeTTL <= 0 {
		return fmt.Errorf("%w: EXCHANGE_CODE_TTL must be positive", ErrInvalidConfig)
	}
	return nil
}

// frontendURL joins FrontendURL and path.
func (c Config) frontendURL(path string) string {
	return strings.TrimRight(c.FrontendURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// SteamCallbackURL is where Steam sends the user back to.
func (c Config) SteamCallbackURL() string {
	return strings.TrimRight(c.BackendURL, "/") + "/api/steam/auth/steam/callback"
}
