package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAddr, EnvEnvironment, EnvLogLevel, EnvContentDir, EnvBaseURL, EnvCookieHashKey} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Addr, cfg.Addr)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "sovereign_access", cfg.SiteCookie)
	assert.False(t, cfg.Production())
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sovereign.toml")
	content := `
addr = "127.0.0.1:9443"
environment = "Production"
base_url = "https://sovereignmedia.io/"
shutdown_timeout_ms = 2500
tls_cert = "certs/server.crt"
tls_key = "certs/server.key"

[secrets]
site_password = "open-sesame"
CLIENT_TOKEN_ACME = "XYZ"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9443", cfg.Addr)
	assert.True(t, cfg.Production())
	assert.Equal(t, "https://sovereignmedia.io", cfg.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.ShutdownTimeout)
	assert.Equal(t, "content", cfg.ContentDir, "undefined keys keep defaults")
	assert.True(t, cfg.TLS())
	assert.Equal(t, "certs/server.key", cfg.TLSKey)
	assert.Equal(t, "open-sesame", cfg.Secrets["SITE_PASSWORD"])
	assert.Equal(t, "XYZ", cfg.Secrets["CLIENT_TOKEN_ACME"])
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sovereign.toml")
	require.NoError(t, os.WriteFile(path, []byte(`addr = ":7000"`), 0o644))

	t.Setenv(EnvAddr, ":7100")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7100", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty addr", mutate: func(c *Config) { c.Addr = "" }},
		{name: "unknown environment", mutate: func(c *Config) { c.Environment = "staging" }},
		{name: "empty site cookie", mutate: func(c *Config) { c.SiteCookie = "" }},
		{name: "short hash key", mutate: func(c *Config) { c.CookieHashKey = "too-short" }},
		{name: "tls cert without key", mutate: func(c *Config) { c.TLSCert = "server.crt" }},
		{name: "tls key without cert", mutate: func(c *Config) { c.TLSKey = "server.key" }},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`addr = `), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestExampleFileLoads(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join("..", "..", "sovereign.example.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Addr, cfg.Addr)
	assert.False(t, cfg.TLS())
	assert.Empty(t, cfg.Secrets)
}
