package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig

	// Examples are offered on the submit form as one-click inputs.
	Examples []Example
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000
	Mode string // "debug", "release", "test"; default: "release"

	// RefreshInterval is how often the page reloads while a submission
	// is in flight.
	RefreshInterval time.Duration // default: 2s
}

// ExtractorConfig points at the external extraction service.
type ExtractorConfig struct {
	// BaseURL is the service root; requests go to BaseURL + /api/portfolios.
	BaseURL string // default: "http://localhost:8000"

	// Timeout bounds each extraction request. Zero waits indefinitely.
	Timeout time.Duration // default: 0
}

// SessionConfig controls per-browser submission state.
type SessionConfig struct {
	CookieName  string        // default: "folio_session"
	TTL         time.Duration // default: 1h
	MaxSessions int           // default: 1000
	Sweep       time.Duration // default: 5m
}

// RateLimitConfig controls per-session submit rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained submit rate per session.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per session.
	Burst int // default: 5
}

// WebhookConfig enables outcome notifications when URL is set.
type WebhookConfig struct {
	URL    string
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Example is a named sample portfolio.
type Example struct {
	Name string
	URL  string
}

var defaultExamples = []Example{
	{Name: "Sonu's Portfolio", URL: "https://sonuchoudhary.my.canva.site/portfolio"},
	{Name: "Dellin's Portfolio", URL: "https://dellinzhang.com/video-edit"},
}

// Load reads configuration from a .env file (if present) and environment
// variables, with sane defaults. Variables already set in the environment
// win over the .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:            envOr("FOLIO_HOST", "0.0.0.0"),
			Port:            envIntOr("FOLIO_PORT", 3000),
			Mode:            envOr("FOLIO_MODE", "release"),
			RefreshInterval: envDurationOr("FOLIO_REFRESH_INTERVAL", 2*time.Second),
		},
		Extractor: ExtractorConfig{
			BaseURL: envOr("FOLIO_EXTRACTOR_URL", "http://localhost:8000"),
			Timeout: envDurationOr("FOLIO_EXTRACT_TIMEOUT", 0),
		},
		Session: SessionConfig{
			CookieName:  envOr("FOLIO_SESSION_COOKIE", "folio_session"),
			TTL:         envDurationOr("FOLIO_SESSION_TTL", time.Hour),
			MaxSessions: envIntOr("FOLIO_MAX_SESSIONS", 1000),
			Sweep:       envDurationOr("FOLIO_SESSION_SWEEP", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("FOLIO_RATE_RPS", 1.0),
			Burst:             envIntOr("FOLIO_RATE_BURST", 5),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("FOLIO_WEBHOOK_URL"),
			Secret: os.Getenv("FOLIO_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("FOLIO_LOG_LEVEL", "info"),
			Format: envOr("FOLIO_LOG_FORMAT", "json"),
		},
		Examples: envExamplesOr("FOLIO_EXAMPLES", defaultExamples),
	}
}

// envExamplesOr parses "Name=URL,Name=URL". Entries without "=" use the
// URL as their name.
func envExamplesOr(key string, fallback []Example) []Example {
	parts := envSliceOr(key, nil)
	if parts == nil {
		return fallback
	}
	result := make([]Example, 0, len(parts))
	for _, p := range parts {
		name, url, ok := strings.Cut(p, "=")
		if !ok {
			name, url = p, p
		}
		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if url == "" {
			continue
		}
		result = append(result, Example{Name: name, URL: url})
	}
	return result
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
