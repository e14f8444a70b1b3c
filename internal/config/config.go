package config

import (
	"fmt"

	pkgconfig "github.com/yesmovie/backend/pkg/config"
)

// Storage backends for uploaded media.
const (
	MediaStorageMemory = "memory"
	MediaStorageGCS    = "gcs"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"yesmovie"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"yesmovie_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"yesmovie"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Paystack payment gateway
	PaystackBaseURL    string `env:"PAYSTACK_BASE_URL" envDefault:"https://api.paystack.co"`
	PaystackSecretKey  string `env:"PAYSTACK_SECRET_KEY"`
	PaymentCallbackURL string `env:"PAYMENT_CALLBACK_URL" envDefault:"http://localhost:3000/payment/callback"`

	// SendGrid invoice email
	SendGridAPIKey    string `env:"SENDGRID_API_KEY"`
	SendGridFromName  string `env:"SENDGRID_FROM_NAME" envDefault:"YesMovie"`
	SendGridFromEmail string `env:"SENDGRID_FROM_EMAIL" envDefault:"no-reply@yesmovie.example.com"`

	// Media storage
	MediaStorageBackend string `env:"MEDIA_STORAGE_BACKEND" envDefault:"memory"`
	MediaGCSBucket      string `env:"MEDIA_GCS_BUCKET"`
	MediaBaseURL        string `env:"MEDIA_BASE_URL"`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.MediaStorageBackend {
	case MediaStorageMemory, MediaStorageGCS:
	default:
		return fmt.Errorf("invalid media storage backend: %q", c.MediaStorageBackend)
	}
	if c.MediaStorageBackend == MediaStorageGCS && c.MediaGCSBucket == "" {
		return fmt.Errorf("MEDIA_GCS_BUCKET is required when the gcs storage backend is selected")
	}
	return nil
}
