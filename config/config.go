package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Fetch     FetchConfig
	Export    ExportConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Webhook   WebhookConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000
	Mode string // "debug", "release", "test"; default: "release"
}

// SiteConfig describes the single storefront this service scrapes.
type SiteConfig struct {
	// Domain must appear somewhere in a submitted URL for it to be accepted.
	Domain string // default: "famousjackets.com"

	// DownloadName is the attachment filename offered by /download.
	DownloadName string // default: "famousjackets_product.csv"
}

// FetchConfig controls the outbound product page request.
type FetchConfig struct {
	// Timeout bounds the whole request, body included.
	Timeout time.Duration // default: 10s

	// UserAgent is sent on every request.
	UserAgent string

	// ChromeTLS dials https targets with a Chrome ClientHello.
	ChromeTLS bool // default: true

	// MaxBodyBytes caps the response body. 0 disables the cap.
	MaxBodyBytes int64 // default: 10 MB
}

// ExportConfig controls where CSV files are written and how long they live.
type ExportConfig struct {
	// Dir is the transient storage location.
	Dir string // default: os.TempDir()

	// Retention is the age after which exported files are swept.
	// 0 keeps every file forever.
	Retention time.Duration // default: 0

	// SweepInterval is how often the janitor runs when Retention > 0.
	SweepInterval time.Duration // default: 5m

	// ConfineDownloads limits /download to files the exporter produced.
	ConfineDownloads bool // default: true
}

// RateLimitConfig controls per-client rate limiting on scrape routes.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per client IP.
	Burst int // default: 5
}

// AuthConfig controls API key authentication on the JSON API.
type AuthConfig struct {
	// APIKeys is the list of accepted keys. Empty leaves the API open.
	APIKeys []string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool // default: true
}

// WebhookConfig controls export notifications.
type WebhookConfig struct {
	// URL receives a product.exported event per scrape. Empty disables it.
	URL string

	// Secret signs each body with HMAC-SHA256 when set.
	Secret string
}

// DefaultUserAgent is the browser identifier sent to the storefront.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("JACKETSCRAPE_HOST", "0.0.0.0"),
			Port: envIntOr("JACKETSCRAPE_PORT", 3000),
			Mode: envOr("JACKETSCRAPE_MODE", "release"),
		},
		Site: SiteConfig{
			Domain:       envOr("JACKETSCRAPE_SITE_DOMAIN", "famousjackets.com"),
			DownloadName: envOr("JACKETSCRAPE_DOWNLOAD_NAME", "famousjackets_product.csv"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("JACKETSCRAPE_FETCH_TIMEOUT", 10*time.Second),
			UserAgent:    envOr("JACKETSCRAPE_USER_AGENT", DefaultUserAgent),
			ChromeTLS:    envBoolOr("JACKETSCRAPE_CHROME_TLS", true),
			MaxBodyBytes: envInt64Or("JACKETSCRAPE_MAX_BODY", 10<<20),
		},
		Export: ExportConfig{
			Dir:              envOr("JACKETSCRAPE_EXPORT_DIR", os.TempDir()),
			Retention:        envDurationOr("JACKETSCRAPE_EXPORT_RETENTION", 0),
			SweepInterval:    envDurationOr("JACKETSCRAPE_SWEEP_INTERVAL", 5*time.Minute),
			ConfineDownloads: envBoolOr("JACKETSCRAPE_CONFINE_DOWNLOADS", true),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("JACKETSCRAPE_RATE_RPS", 2.0),
			Burst:             envIntOr("JACKETSCRAPE_RATE_BURST", 5),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("JACKETSCRAPE_API_KEYS", nil),
		},
		Log: LogConfig{
			Level:  strings.ToLower(envOr("JACKETSCRAPE_LOG_LEVEL", "info")),
			Format: strings.ToLower(envOr("JACKETSCRAPE_LOG_FORMAT", "json")),
		},
		Metrics: MetricsConfig{
			Enabled: envBoolOr("JACKETSCRAPE_METRICS", true),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("JACKETSCRAPE_WEBHOOK_URL"),
			Secret: os.Getenv("JACKETSCRAPE_WEBHOOK_SECRET"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
