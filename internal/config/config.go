package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                  int    `env:"PORT" envDefault:"8080"`
	MaxBodyBytes          int64  `env:"MAX_BODY_BYTES" envDefault:"8388608"`
	OfflineTimeoutSeconds int    `env:"OFFLINE_TIMEOUT_SECONDS" envDefault:"20"`
	FreeSessionTTLSeconds int    `env:"FREE_SESSION_TTL_SECONDS" envDefault:"600"`
	FreeDailyImageQuota   int    `env:"FREE_DAILY_IMAGE_QUOTA" envDefault:"5"`
	RateLimitPerMin       int    `env:"RATE_LIMIT_PER_MIN" envDefault:"120"`
	RedisURL              string `env:"REDIS_URL"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) OfflineTimeout() time.Duration {
	return time.Duration(c.OfflineTimeoutSeconds) * time.Second
}

func (c *Config) FreeSessionTTL() time.Duration {
	return time.Duration(c.FreeSessionTTLSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate() error {
	if c.OfflineTimeoutSeconds <= 0 {
		return fmt.Errorf("OFFLINE_TIMEOUT_SECONDS must be positive, got %d", c.OfflineTimeoutSeconds)
	}
	if c.FreeSessionTTLSeconds <= 0 {
		return fmt.Errorf("FREE_SESSION_TTL_SECONDS must be positive, got %d", c.FreeSessionTTLSeconds)
	}
	if c.FreeDailyImageQuota < 0 {
		return fmt.Errorf("FREE_DAILY_IMAGE_QUOTA must not be negative, got %d", c.FreeDailyImageQuota)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
