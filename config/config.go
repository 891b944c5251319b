package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Fetch   FetchConfig
	Extract ExtractConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls the outbound product page request.
type FetchConfig struct {
	// Timeout bounds the whole request, body read included.
	Timeout time.Duration // default: 10s

	// MaxBodyBytes caps how much of the page is read.
	MaxBodyBytes int64 // default: 10 MiB

	// ChromeTLS dials TLS with a Chrome ClientHello fingerprint (utls).
	ChromeTLS bool // default: false

	// Proxy is an optional http(s) proxy URL.
	Proxy string
}

// ExtractConfig controls how title and price are located in the page.
type ExtractConfig struct {
	// Strategy is "regex" or "selector"; default: "regex".
	Strategy string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("AMZPRICE_HOST", "0.0.0.0"),
			Port: envIntOr("AMZPRICE_PORT", 8080),
			Mode: envOr("AMZPRICE_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("AMZPRICE_FETCH_TIMEOUT", 10*time.Second),
			MaxBodyBytes: envInt64Or("AMZPRICE_MAX_BODY_BYTES", 10<<20),
			ChromeTLS:    envBoolOr("AMZPRICE_CHROME_TLS", false),
			Proxy:        os.Getenv("AMZPRICE_PROXY"),
		},
		Extract: ExtractConfig{
			Strategy: envOr("AMZPRICE_EXTRACT_STRATEGY", "regex"),
		},
		Log: LogConfig{
			Level:  envOr("AMZPRICE_LOG_LEVEL", "info"),
			Format: envOr("AMZPRICE_LOG_FORMAT", "json"),
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
		if i, err := strconv.ParseInt(v, 10, 64); err == nil && i > 0 {
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

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
