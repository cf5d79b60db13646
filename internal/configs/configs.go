package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env       string `env:"ENV" env-default:"dev"`
	AppHost   string `env:"APP_HOST" env-default:"127.0.0.1"`
	AppPort   string `env:"APP_PORT" env-default:"8080"`
	APIPrefix string `env:"API_PREFIX" env-default:"/api/v1"`

	DatabaseDriver string `env:"DATABASE_DRIVER" env-default:"sqlite"`
	DatabaseDSN    string `env:"DATABASE_DSN" env-default:"tasks.db"`

	RedisAddr           string `env:"REDIS_ADDR"`
	TaskCacheTTLSeconds int    `env:"TASK_CACHE_TTL_SECONDS" env-default:"300"`

	SecretKey                string `env:"SECRET_KEY"`
	JWTIssuer                string `env:"JWT_ISSUER" env-default:"task-tracker"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" env-default:"30"`
	PasswordHasher           string `env:"PASSWORD_HASHER" env-default:"bcrypt"`

	// Zero disables the login throttle.
	LoginRateLimitPerMinute int  `env:"LOGIN_RATE_LIMIT_PER_MINUTE" env-default:"0"`
	TrustProxyHeaders       bool `env:"TRUST_PROXY_HEADERS" env-default:"false"`

	InitialUserEmail    string `env:"INITIAL_USER_EMAIL" env-default:"admin@example.com"`
	InitialUserPassword string `env:"INITIAL_USER_PASSWORD"`

	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS" env-default:"20"`
}

// Load reads the process environment. A .env file, if any, must already
// have been loaded by the caller.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("ENV must be one of %s, %s, %s (got %q)", EnvLocal, EnvDev, EnvProd, cfg.Env)
	}
	if cfg.AppPort == "" {
		return errors.New("APP_PORT must not be empty")
	}
	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %s or %s (got %q)", DriverSQLite, DriverPostgres, cfg.DatabaseDriver)
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}
	if cfg.AccessTokenExpireMinutes <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be greater than 0")
	}
	if cfg.LoginRateLimitPerMinute < 0 {
		return errors.New("LOGIN_RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if cfg.TaskCacheTTLSeconds <= 0 {
		return errors.New("TASK_CACHE_TTL_SECONDS must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func (c Config) AppURL() string {
	return net.JoinHostPort(c.AppHost, c.AppPort)
}

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func (c Config) TaskCacheTTL() time.Duration {
	return time.Duration(c.TaskCacheTTLSeconds) * time.Second
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
