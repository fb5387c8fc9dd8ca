package steam

import "time"

// Config holds Steam integration settings.
type Config struct {
	APIKey         string        `env:"STEAM_API_KEY"`
	APIBaseURL     string        `env:"STEAM_API_BASE_URL" envDefault:"https://api.steampowered.com"`
	OpenIDEndpoint string        `env:"STEAM_OPENID_URL" envDefault:"https://steamcommunity.com/openid/login"`
	VerifyOpenID   bool          `env:"STEAM_OPENID_VERIFY" envDefault:"true"`
	Timeout        time.Duration `env:"STEAM_TIMEOUT" envDefault:"10s"`
	Concurrency    int           `env:"STEAM_CONCURRENCY" envDefault:"8"`
}
