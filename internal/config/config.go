package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the TubeTweet API.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"tubetweet-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"TUBETWEET_API_PORT" envDefault:"8190"`
	LogLevel        string        `env:"TUBETWEET_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"TUBETWEET_LOG_FORMAT" envDefault:"console"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database
	DatabaseURL    string        `env:"DB_POSTGRESQL_DSN,notEmpty"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Session tokens
	JWTSecret       string        `env:"TUBETWEET_JWT_SECRET,notEmpty"`
	AccessTokenTTL  time.Duration `env:"TUBETWEET_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"TUBETWEET_REFRESH_TOKEN_TTL" envDefault:"240h"`
	CookieDomain    string        `env:"TUBETWEET_COOKIE_DOMAIN"`
	CookieSecure    bool          `env:"TUBETWEET_COOKIE_SECURE" envDefault:"false"`

	// CORS
	CORSAllowedOrigins []string `env:"TUBETWEET_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	// Storage Backend Selection
	StorageBackend string `env:"TUBETWEET_STORAGE_BACKEND" envDefault:"s3"` // Options: "s3" or "local"

	// Local Storage Configuration
	LocalStoragePath    string `env:"TUBETWEET_LOCAL_STORAGE_PATH"`
	LocalStorageBaseURL string `env:"TUBETWEET_LOCAL_STORAGE_BASE_URL"`

	// S3 Storage Configuration
	S3Endpoint       string `env:"TUBETWEET_S3_ENDPOINT"`
	S3PublicEndpoint string `env:"TUBETWEET_S3_PUBLIC_ENDPOINT"`
	S3Region         string `env:"TUBETWEET_S3_REGION" envDefault:"us-west-2"`
	S3Bucket         string `env:"TUBETWEET_S3_BUCKET"`
	S3AccessKeyID    string `env:"TUBETWEET_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"TUBETWEET_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle   bool   `env:"TUBETWEET_S3_USE_PATH_STYLE" envDefault:"true"`

	// Upload limits
	MaxVideoBytes int64 `env:"TUBETWEET_MAX_VIDEO_BYTES" envDefault:"209715200"`
	MaxImageBytes int64 `env:"TUBETWEET_MAX_IMAGE_BYTES" envDefault:"10485760"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	cfg.S3PublicEndpoint = strings.TrimSpace(cfg.S3PublicEndpoint)

	if cfg.MaxVideoBytes <= 0 {
		cfg.MaxVideoBytes = 200 * 1024 * 1024
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 10 * 1024 * 1024
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return nil, fmt.Errorf("refresh token TTL must exceed access token TTL")
	}
	if cfg.IsLocalStorage() && strings.TrimSpace(cfg.LocalStoragePath) == "" {
		return nil, fmt.Errorf("TUBETWEET_LOCAL_STORAGE_PATH is required when storage backend is local")
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsLocalStorage returns true if local storage backend is configured.
func (c *Config) IsLocalStorage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "local"
}

// IsS3Storage returns true if S3 storage backend is configured.
func (c *Config) IsS3Storage() bool {
	backend := strings.ToLower(strings.TrimSpace(c.StorageBackend))
	return backend == "" || backend == "s3"
}
