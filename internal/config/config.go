package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string
	CacheTTL    time.Duration
}

// Load reads configuration from the environment. DATABASE_URL is required;
// REDIS_ADDR may be set empty to run without the response cache.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("cache_ttl", 30*time.Second)
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys it has seen; bind the one without a
	// default explicitly.
	if err := v.BindEnv("database_url"); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:        v.GetString("addr"),
		DatabaseURL: v.GetString("database_url"),
		RedisAddr:   v.GetString("redis_addr"),
		CacheTTL:    v.GetDuration("cache_ttl"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("environment variable DATABASE_URL not found")
	}
	return cfg, nil
}
