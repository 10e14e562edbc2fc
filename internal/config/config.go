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
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	FrontendURL  string // SPA origin allowed by CORS
	ContactPhone string
	ContactEmail string

	// Local state database (persisted cache + auth artifacts)
	DBDriver     string
	DBConnection string

	// Remote store + auth provider (Supabase-style)
	SupabaseURL     string
	SupabaseAnonKey string

	// Operation timeouts
	ListLoadTimeout   time.Duration
	DetailLoadTimeout time.Duration
	WriteTimeout      time.Duration
	SignOutTimeout    time.Duration
	WebhookTimeout    time.Duration

	// AI provider
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	// Automation webhook endpoints (n8n test + production URLs)
	WebhookURLs []string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region              string
	S3Bucket              string
	S3AccessKey           string
	S3SecretKey           string
	S3Endpoint            string        // Optional: for S3-compatible services
	S3PublicBucket        bool          // Bucket serves objects without signing
	S3PresignExpiryPublic time.Duration // Signed-locator expiry when the bucket is private
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "Yes Conciergerie"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envString("APP_URL", "http://localhost:8090"),
		Port:         envString("PORT", "8090"),
		FrontendURL:  envString("FRONTEND_URL", "http://localhost:5173"),
		ContactPhone: envString("CONTACT_PHONE", "0635490845"),
		ContactEmail: envString("CONTACT_EMAIL", "jvh@yesconciergerie.com"),

		// Local state database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/partner.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Remote collaborators
		SupabaseURL:     envRequired("SUPABASE_URL"),
		SupabaseAnonKey: envRequired("SUPABASE_ANON_KEY"),

		// Timeouts match the observed behavior of the original client
		ListLoadTimeout:   envDuration("LIST_LOAD_TIMEOUT", 20*time.Second),
		DetailLoadTimeout: envDuration("DETAIL_LOAD_TIMEOUT", 30*time.Second),
		WriteTimeout:      envDuration("WRITE_TIMEOUT", 20*time.Second),
		SignOutTimeout:    envDuration("SIGN_OUT_TIMEOUT", 7*time.Second),
		WebhookTimeout:    envDuration("WEBHOOK_TIMEOUT", 6*time.Second),

		// AI provider
		GeminiAPIKey:  envString("GEMINI_API_KEY", ""),
		GeminiBaseURL: envString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   envString("GEMINI_MODEL", "gemini-3-flash-preview"),

		// Automation
		WebhookURLs: nonEmpty(
			envString("WEBHOOK_URL_TEST", ""),
			envString("WEBHOOK_URL_PROD", ""),
		),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:              envRequired("S3_REGION"),
		S3Bucket:              envRequired("S3_BUCKET"),
		S3AccessKey:           envRequired("S3_ACCESS_KEY"),
		S3SecretKey:           envRequired("S3_SECRET_KEY"),
		S3Endpoint:            envString("S3_ENDPOINT", ""),
		S3PublicBucket:        envBool("S3_PUBLIC_BUCKET", true),
		S3PresignExpiryPublic: envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
	}

	return cfg
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
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
