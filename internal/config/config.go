package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	switch GetEnvWithDefault("APP_ENV", "development") {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port     int    `env:"APP_PORT" envDefault:"8080"`
	Host     string `env:"APP_HOST" envDefault:"localhost"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Database configuration
	DBDriver   string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"momo"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"momo"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBPath     string `env:"DB_PATH" envDefault:"momo.sqlite"`
	SeedMenu   bool   `env:"SEED_MENU" envDefault:"true"`

	// Security Configuration
	JWTSecret     string        `env:"JWT_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"30m"`
	CookieSecure  bool          `env:"COOKIE_SECURE"`
	AdminEmails   []string      `env:"ADMIN_EMAILS" envSeparator:","`

	// ClientTokenTTL is the lifetime of client_credentials access tokens
	ClientTokenTTL time.Duration `env:"CLIENT_TOKEN_TTL" envDefault:"2h"`

	// ClientOrigin is the storefront URL used in password reset links
	ClientOrigin       string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	TokenPurgeInterval time.Duration `env:"TOKEN_PURGE_INTERVAL" envDefault:"1h"`
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SecureCookies is true in production regardless of COOKIE_SECURE
func (c *Config) SecureCookies() bool {
	return c.CookieSecure || c.IsProduction()
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, AppEnv: %s, DBDriver: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, LogLevel: %s, JWTSecret: [REDACTED], SessionTTL: %s, AdminEmails: %d}",
		c.Port, c.Host, c.AppEnv, c.DBDriver, c.DBHost, c.DBName, c.DBUser, c.DBPath, c.LogLevel, c.SessionTTL, len(c.AdminEmails))
}

// Validate checks the values env parsing cannot express
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("APP_PORT out of range: %d", c.Port)
	}
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.SessionTTL <= 0 || c.ResetTokenTTL <= 0 || c.ClientTokenTTL <= 0 {
		return errors.New("SESSION_TTL, RESET_TOKEN_TTL and CLIENT_TOKEN_TTL must be positive")
	}
	if c.TokenPurgeInterval <= 0 {
		return errors.New("TOKEN_PURGE_INTERVAL must be positive")
	}
	return nil
}

// LoadConfig reads the configuration from environment variables and validates it.
// Returns an error if a required variable is missing or a value is malformed.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for i, email := range cfg.AdminEmails {
		cfg.AdminEmails[i] = strings.ToLower(strings.TrimSpace(email))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Infof("Configuration loaded: %s", cfg.String())
	return cfg, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
