package cheapshark

import "time"

// UbisoftStoreID is the CheapShark id of the Ubisoft Store.
const UbisoftStoreID = 13

type Config struct {
	BaseURL   string        `env:"CHEAPSHARK_BASE_URL" envDefault:"https://www.cheapshark.com"`
	UserAgent string        `env:"CHEAPSHARK_USER_AGENT" envDefault:"Mozilla/5.0 (compatible; DealsBot/1.0)"`
	Timeout   time.Duration `env:"CHEAPSHARK_TIMEOUT" envDefault:"10s"`
	CacheTTL  time.Duration `env:"CHEAPSHARK_CACHE_TTL" envDefault:"5m"`
}
