package main

import (
	"errors"
	"time"

	"github.com/JhonRainbow6/WebProject/modules/account"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/cheapshark"
	"github.com/JhonRainbow6/WebProject/pkg/email"
	"github.com/JhonRainbow6/WebProject/pkg/file"
	"github.com/JhonRainbow6/WebProject/pkg/httpserver"
	"github.com/JhonRainbow6/WebProject/pkg/mongo"
	"github.com/JhonRainbow6/WebProject/pkg/newsapi"
	"github.com/JhonRainbow6/WebProject/pkg/redis"
	"github.com/JhonRainbow6/WebProject/pkg/steam"
)

// AppConfig is loaded once at startup; each part is handed to the package
// that owns it.
type AppConfig struct {
	Env          string        `env:"APP_ENV" envDefault:"development"`
	ServiceName  string        `env:"SERVICE_NAME" envDefault:"capgames-api"`
	ReadyTimeout time.Duration `env:"READY_TIMEOUT" envDefault:"3s"`
	OnceCapacity int           `env:"ONCE_STORE_CAPACITY" envDefault:"10000"`

	HTTP       httpserver.Config
	CORS       httpserver.CORSConfig
	Account    account.Config
	Google     auth.GoogleOAuthConfig
	Steam      steam.Config
	Mongo      mongo.Config
	Redis      redis.Config
	Files      file.Config
	Email      email.Config
	CheapShark cheapshark.Config
	News       newsapi.Config
}

func (c AppConfig) Validate() error {
	return errors.Join(
		c.Account.Validate(),
		c.Files.Validate(),
	)
}
