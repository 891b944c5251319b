package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"AMZPRICE_HOST", "AMZPRICE_PORT", "AMZPRICE_MODE",
		"AMZPRICE_FETCH_TIMEOUT", "AMZPRICE_MAX_BODY_BYTES", "AMZPRICE_CHROME_TLS", "AMZPRICE_PROXY",
		"AMZPRICE_EXTRACT_STRATEGY", "AMZPRICE_LOG_LEVEL", "AMZPRICE_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Fetch.MaxBodyBytes)
	assert.False(t, cfg.Fetch.ChromeTLS)
	assert.Empty(t, cfg.Fetch.Proxy)
	assert.Equal(t, "regex", cfg.Extract.Strategy)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AMZPRICE_PORT", "9090")
	t.Setenv("AMZPRICE_FETCH_TIMEOUT", "3s")
	t.Setenv("AMZPRICE_CHROME_TLS", "true")
	t.Setenv("AMZPRICE_EXTRACT_STRATEGY", "selector")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.True(t, cfg.Fetch.ChromeTLS)
	assert.Equal(t, "selector", cfg.Extract.Strategy)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("AMZPRICE_PORT", "not-a-port")
	t.Setenv("AMZPRICE_FETCH_TIMEOUT", "-5s")
	t.Setenv("AMZPRICE_MAX_BODY_BYTES", "0")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Fetch.MaxBodyBytes)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = NewLogger(LogConfig{Level: "debug", Format: "text"}, &buf)
	logger.Debug("detail")
	assert.Contains(t, buf.String(), "msg=detail")
}
