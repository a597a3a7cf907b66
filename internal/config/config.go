package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default secrets are only acceptable for local development.
const (
	DefaultJWTSecret   = "dev-secret-change"
	DefaultAdminSecret = "change-me"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Uploads      UploadsConfig
	Seed         SeedConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CatalogCacheTTL int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	// Encoding is "json" or "console".
	Encoding string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret           string
	TokenTTLSeconds     int
	AdminSecret         string
	BcryptCost          int
	AllowOrphanedTokens bool
}

// UploadsConfig controls where uploaded photos are stored and served from.
type UploadsConfig struct {
	Dir         string
	URLPrefix   string
	MaxBodySize int
}

// SeedConfig points at an optional YAML file of accounts created on boot.
type SeedConfig struct {
	UsersPath string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	tokenTTL, err := strconv.Atoi(getEnv("JWT_EXPIRE", "3600"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "furniture-store"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:            os.Getenv("REDIS_ADDR"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              redisDB,
			CatalogCacheTTL: getEnvAsInt("REDIS_CATALOG_CACHE_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:           getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTLSeconds:     tokenTTL,
			AdminSecret:         getEnv("ADMIN_SECRET", DefaultAdminSecret),
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 12),
			AllowOrphanedTokens: getEnvAsBool("AUTH_ALLOW_ORPHANED_TOKENS", false),
		},
		Uploads: UploadsConfig{
			Dir:         getEnv("UPLOADS_DIR", "uploads"),
			URLPrefix:   getEnv("UPLOADS_URL_PREFIX", "/uploads"),
			MaxBodySize: getEnvAsInt("UPLOADS_MAX_BODY_BYTES", 20*1024*1024),
		},
		Seed: SeedConfig{
			UsersPath: os.Getenv("SEED_USERS_PATH"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that must never reach a production deployment.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.TokenTTLSeconds <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.IsProduction() {
		if c.Auth.JWTSecret == DefaultJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET must be overridden in production"))
		}
		if c.Auth.AdminSecret == DefaultAdminSecret {
			errs = append(errs, errors.New("ADMIN_SECRET must be overridden in production"))
		}
	}
	return errors.Join(errs...)
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// UsesDefaultSecrets reports whether either shared secret is still the development default.
func (a AuthConfig) UsesDefaultSecrets() bool {
	return a.JWTSecret == DefaultJWTSecret || a.AdminSecret == DefaultAdminSecret
}

// TokenTTL returns the token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLSeconds) * time.Second
}

// CatalogTTL returns how long catalog entries live in redis.
func (r RedisConfig) CatalogTTL() time.Duration {
	if r.CatalogCacheTTL <= 0 {
		return 0
	}
	return time.Duration(r.CatalogCacheTTL) * time.Second
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
