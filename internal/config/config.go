package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Payment - Stripe
	StripeSecretKey      string
	StripeWebhookSecret  string
	StripePublishableKey string
	StripePriceIDMonthly string
	StripePriceIDYearly  string
	StripeTimeout        time.Duration

	// Checkout redirects
	SuccessURL string
	CancelURL  string

	// Checkout endpoint protection
	CheckoutRateLimit int
	// Set only behind a reverse proxy that overwrites X-Forwarded-For
	TrustProxyHeaders bool

	// Event archive, S3-compatible (optional, disabled without bucket)
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Storefront"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/store.db?_pragma=journal_mode(WAL)"),

		// Payment (all keys are required, the process refuses to start without them)
		StripeSecretKey:      envRequired("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:  envRequired("STRIPE_WEBHOOK_SECRET"),
		StripePublishableKey: envRequired("STRIPE_PUBLISHABLE_KEY"),
		StripePriceIDMonthly: envString("STRIPE_PRICE_ID_MONTHLY", ""),
		StripePriceIDYearly:  envString("STRIPE_PRICE_ID_YEARLY", ""),
		StripeTimeout:        envDuration("STRIPE_TIMEOUT", 30*time.Second),

		SuccessURL: envRequired("SUCCESS_URL"),
		CancelURL:  envRequired("CANCEL_URL"),

		CheckoutRateLimit: envInt("CHECKOUT_RATE_LIMIT", 30), // per IP per minute
		TrustProxyHeaders: envBool("TRUST_PROXY_HEADERS", false),

		// Event archive
		S3Bucket:    envString("S3_BUCKET", ""),
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	return cfg
}

// LoadDatabase reads only the persistence settings, for tooling that must
// run without provider credentials.
func LoadDatabase() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/store.db?_pragma=journal_mode(WAL)"),
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PlanPriceID maps a catalog plan slug to its configured Stripe price.
// Returns "" when the plan has no price configured.
func (c *Config) PlanPriceID(slug string) string {
	switch slug {
	case "monthly":
		return c.StripePriceIDMonthly
	case "yearly":
		return c.StripePriceIDYearly
	default:
		return ""
	}
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:              c.AppName,
		AppEnv:               c.AppEnv,
		Port:                 c.Port,
		StripePublishableKey: c.StripePublishableKey,
	}
}
