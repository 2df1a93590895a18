package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   string `env:"PORT" envDefault:"8080"`

	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	MongoURI    string `env:"MONGO_URI,required,notEmpty"`
	MongoDB     string `env:"MONGO_DB" envDefault:"goalsetter"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"minio:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"goal-exports"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`

	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiry       time.Duration `env:"JWT_EXPIRY" envDefault:"720h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	HashConcurrency int           `env:"HASH_CONCURRENCY" envDefault:"0"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	SentryDSN string `env:"SENTRY_DSN"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTExpiry <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY must be positive, got %s", cfg.JWTExpiry)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
