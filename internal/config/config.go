package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER.
const (
	DriverSurreal  = "surreal"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Supported values for WEBHOOK_EMPTY_EMAIL_POLICY.
const (
	EmptyEmailPassthrough = "passthrough"
	EmptyEmailSkip        = "skip"
)

// Provider is the read-only view of the configuration that the database
// layer and the server depend on. It lets tests hand in a partial mock.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetDBDriver() string
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDatabaseURL() string
	GetDBQueryTimeout() time.Duration
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr    string
	AppBaseURL string
	LogFormat  string
	LogLevel   string

	SessionSecret string

	// ClerkWebhookSecret is the Svix signing secret ("whsec_...") used to
	// verify identity provider webhooks. It is required.
	ClerkWebhookSecret string
	ClerkSignInURL     string
	ClerkAccountURL    string

	RegistrationOpen        bool
	WebhookEmptyEmailPolicy string

	EmailProvider string
	EmailAPIKey   string
	EmailSender   string

	DBDriver       string
	DBUrl          string
	DBNs           string
	DBDb           string
	DBUser         string
	DBPass         string
	DatabaseURL    string
	DBQueryTimeout time.Duration
}

// New loads configuration from the environment, reading a .env file first
// when one exists. The result is validated eagerly: a missing webhook
// secret or incomplete database settings are returned as an error and the
// caller is expected to stop the process.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		AppAddr:                 getEnv("APP_ADDR", ":8080"),
		AppBaseURL:              getEnv("APP_BASE_URL", "http://localhost:8080"),
		LogFormat:               getEnv("LOG_FORMAT", "text"),
		LogLevel:                getEnv("LOG_LEVEL", "debug"),
		SessionSecret:           os.Getenv("SESSION_SECRET"),
		ClerkWebhookSecret:      strings.TrimSpace(os.Getenv("CLERK_WEBHOOK_SECRET")),
		ClerkSignInURL:          os.Getenv("CLERK_SIGN_IN_URL"),
		ClerkAccountURL:         os.Getenv("CLERK_ACCOUNT_URL"),
		WebhookEmptyEmailPolicy: strings.ToLower(getEnv("WEBHOOK_EMPTY_EMAIL_POLICY", EmptyEmailPassthrough)),
		EmailProvider:           strings.ToLower(getEnv("EMAIL_PROVIDER", "log")),
		EmailAPIKey:             os.Getenv("EMAIL_API_KEY"),
		EmailSender:             os.Getenv("EMAIL_SENDER"),
		DBDriver:                strings.ToLower(getEnv("DB_DRIVER", DriverSurreal)),
		DBUrl:                   os.Getenv("SURREAL_URL"),
		DBNs:                    os.Getenv("SURREAL_NS"),
		DBDb:                    os.Getenv("SURREAL_DB"),
		DBUser:                  os.Getenv("SURREAL_USER"),
		DBPass:                  os.Getenv("SURREAL_PASS"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
	}

	open, err := parseBool("REGISTRATION_OPEN", false)
	if err != nil {
		return nil, err
	}
	cfg.RegistrationOpen = open

	timeout, err := parseDuration("DB_QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.DBQueryTimeout = timeout

	if cfg.SessionSecret == "" {
		// Flash cookies will not survive a restart, which is fine for development.
		slog.Warn("SESSION_SECRET is not set, generating an ephemeral key")
		cfg.SessionSecret = randomSecret()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the application relies on.
func (c *Config) Validate() error {
	if c.ClerkWebhookSecret == "" {
		return fmt.Errorf("required environment variable CLERK_WEBHOOK_SECRET is not set")
	}

	switch c.WebhookEmptyEmailPolicy {
	case EmptyEmailPassthrough, EmptyEmailSkip:
	default:
		return fmt.Errorf("WEBHOOK_EMPTY_EMAIL_POLICY must be %q or %q, got %q",
			EmptyEmailPassthrough, EmptyEmailSkip, c.WebhookEmptyEmailPolicy)
	}

	switch c.EmailProvider {
	case "", "log":
	case "resend":
		if c.EmailAPIKey == "" {
			return fmt.Errorf("EMAIL_PROVIDER is resend but EMAIL_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q", c.EmailProvider)
	}

	switch c.DBDriver {
	case DriverSurreal:
		if c.DBUrl == "" || c.DBNs == "" || c.DBDb == "" {
			return fmt.Errorf("required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("required environment variable DATABASE_URL is not set")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.DBQueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be a positive duration")
	}
	return nil
}

func (c *Config) GetAppAddr() string { return c.AppAddr }
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetDBDriver() string { return c.DBDriver }
func (c *Config) GetDBURL() string { return c.DBUrl }
func (c *Config) GetDBNs() string { return c.DBNs }
func (c *Config) GetDBDb() string { return c.DBDb }
func (c *Config) GetDBUser() string { return c.DBUser }
func (c *Config) GetDBPass() string { return c.DBPass }
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }
func (c *Config) GetDBQueryTimeout() time.Duration { return c.DBQueryTimeout }

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return v, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return v, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate session secret: %v", err))
	}
	return hex.EncodeToString(b)
}
