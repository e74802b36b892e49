package config

import (
	"errors"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  int    `env:"SERVER_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite://data.db"`

	JWTSecret     string `env:"JWT_SECRET"`
	RefreshSecret string `env:"JWT_REFRESH_SECRET"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:4200"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	ESURL      string `env:"ES_URL"`
	ESUser     string `env:"ES_USER"`
	ESPassword string `env:"ES_PASSWORD"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("missing required env JWT_SECRET")
	}
	if cfg.RefreshSecret == "" {
		return nil, errors.New("missing required env JWT_REFRESH_SECRET")
	}

	return cfg, nil
}
