package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// Mail providers.
const (
	MailSMTP     = "smtp"
	MailSendGrid = "sendgrid"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	DatabaseDriver                   string `mapstructure:"DATABASE_DRIVER"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`

	// Object storage. An empty bucket keeps uploads in memory.
	StorageBucket string        `mapstructure:"STORAGE_BUCKET"`
	SignedURLTTL  time.Duration `mapstructure:"SIGNED_URL_TTL"`
	URLCacheTTL   time.Duration `mapstructure:"URL_CACHE_TTL"`

	// Redis. An empty address selects the in-process cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// RabbitMQ. An empty URL logs events instead of publishing them.
	RabbitMQURL        string `mapstructure:"RABBITMQ_URL"`
	NotificationsQueue string `mapstructure:"NOTIFICATIONS_QUEUE"`

	MailProvider   string `mapstructure:"MAIL_PROVIDER"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
	SMTPHost       string `mapstructure:"SMTP_HOST"`
	SMTPPort       int    `mapstructure:"SMTP_PORT"`
	SMTPUsername   string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword   string `mapstructure:"SMTP_PASSWORD"`
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`

	OverpassURL string  `mapstructure:"OVERPASS_URL"`
	OverpassRPS float64 `mapstructure:"OVERPASS_RPS"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

var appConfig *Config

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"DATABASE_DRIVER",
	"CLIENT_URL",
	"STORAGE_BUCKET",
	"SIGNED_URL_TTL",
	"URL_CACHE_TTL",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"RABBITMQ_URL",
	"NOTIFICATIONS_QUEUE",
	"MAIL_PROVIDER",
	"MAIL_FROM",
	"SMTP_HOST",
	"SMTP_PORT",
	"SMTP_USERNAME",
	"SMTP_PASSWORD",
	"SENDGRID_API_KEY",
	"OVERPASS_URL",
	"OVERPASS_RPS",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
}

// LoadConfig loads configuration from environment variables using Viper.
// Outside release mode a .env file in the working directory is read first.
// When PATH_CONFIG names a YAML file its keys (the same names, any case)
// seed the values; variables set in the environment win over both.
func LoadConfig() (*Config, error) {
	if !strings.EqualFold(os.Getenv("GIN_MODE"), "release") {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DATABASE_DRIVER", DriverFirestore)
	v.SetDefault("SIGNED_URL_TTL", "15m")
	v.SetDefault("URL_CACHE_TTL", "10m")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NOTIFICATIONS_QUEUE", "nexta.notifications")
	v.SetDefault("MAIL_PROVIDER", MailSMTP)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("OVERPASS_RPS", 1)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	if path := os.Getenv("PATH_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfig = &cfg
	return appConfig, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverFirestore:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when DATABASE_DRIVER is firestore")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverFirestore, DriverMemory, c.DatabaseDriver)
	}

	switch c.MailProvider {
	case MailSMTP:
	case MailSendGrid:
		if c.SendGridAPIKey == "" {
			return errors.New("SENDGRID_API_KEY is required when MAIL_PROVIDER is sendgrid")
		}
	default:
		return fmt.Errorf("MAIL_PROVIDER must be %q or %q, got %q", MailSMTP, MailSendGrid, c.MailProvider)
	}

	if c.SignedURLTTL <= 0 {
		return errors.New("SIGNED_URL_TTL must be positive")
	}
	if c.URLCacheTTL <= 0 {
		return errors.New("URL_CACHE_TTL must be positive")
	}
	if c.URLCacheTTL >= c.SignedURLTTL {
		return fmt.Errorf("URL_CACHE_TTL (%s) must be shorter than SIGNED_URL_TTL (%s)", c.URLCacheTTL, c.SignedURLTTL)
	}
	if c.OverpassRPS <= 0 {
		return errors.New("OVERPASS_RPS must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// GetConfig returns the loaded application configuration.
// It will panic if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
