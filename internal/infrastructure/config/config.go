package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full, immutable configuration surface. Load it once at
// startup and pass it by reference into constructors; nothing reads the
// environment after that.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Validate ValidationConfig
	Throttle ThrottleConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// JWTConfig holds the two independent secret/TTL pairs. Access tokens are
// short-lived to bound the blast radius of a leak; refresh tokens are
// long-lived so clients are not forced to re-login.
type JWTConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL,     default=15m"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL,    default=168h"`
}

type ValidationConfig struct {
	PasswordMinLen int    `env:"PASSWORD_MIN_LEN, default=6"`
	NameMinLen     int    `env:"NAME_MIN_LEN,     default=2"`
	DefaultRole    string `env:"DEFAULT_ROLE,     default=viewer"`
}

type ThrottleConfig struct {
	MaxFailures int           `env:"LOGIN_MAX_FAILURES,   default=10"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		return nil, fmt.Errorf("config: access and refresh secrets must differ")
	}
	return &cfg, nil
}
