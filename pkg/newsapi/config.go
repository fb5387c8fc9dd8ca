package newsapi

import "time"

// UbisoftQuery matches Ubisoft and its main franchises.
const UbisoftQuery = `Ubisoft OR "Ubisoft games" OR "Assassin's Creed" OR "Far Cry" OR "Watch Dogs" OR "Rainbow Six"`

type Config struct {
	APIKey   string        `env:"NEWS_API_KEY"`
	BaseURL  string        `env:"NEWS_API_BASE_URL" envDefault:"https://newsapi.org"`
	Language string        `env:"NEWS_API_LANGUAGE" envDefault:"es"`
	PageSize int           `env:"NEWS_API_PAGE_SIZE" envDefault:"20"`
	Timeout  time.Duration `env:"NEWS_API_TIMEOUT" envDefault:"10s"`
}
