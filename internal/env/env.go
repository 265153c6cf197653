package env

import (
	"time"

	env11 "github.com/caarlos0/env/v11"
)

// Env holds environment configuration for the fetch layer
type Env struct {
	UserAgent    string        `env:"WEBFETCH_USER_AGENT"`
	Timeout      time.Duration `env:"WEBFETCH_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes int64         `env:"WEBFETCH_MAX_BODY" envDefault:"5242880"`
	NoBrowser    bool          `env:"WEBFETCH_NO_BROWSER"`
	CacheTTL     time.Duration `env:"WEBFETCH_CACHE_TTL" envDefault:"0s"`
	HistorySize  int           `env:"WEBFETCH_HISTORY_SIZE" envDefault:"10"`
}

// Load reads environment variables
func Load() (*Env, error) {
	env := new(Env)
	if err := env11.Parse(env); err != nil {
		return nil, err
	}
	return env, nil
}
