package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// JWTSecret signs access tokens; required outside development.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the access token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=1h"`

	// RefreshGrace is how long past expiry a token may still be refreshed.
	RefreshGrace time.Duration `env:"REFRESH_GRACE, default=336h"`

	// LockoutThreshold is the failed-attempt count at which an account is
	// locked until explicitly reset.
	LockoutThreshold int `env:"LOCKOUT_THRESHOLD, default=5"`

	// AuditWorkers is the number of background audit trail writers.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
