// Package config loads the server configuration from a TOML file with
// environment overrides, and exposes the read-only secret lookups used by
// the auth layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrInvalid = errors.New("config: invalid")

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Environment variables that override the file.
const (
	EnvAddr          = "SOVEREIGN_ADDR"
	EnvEnvironment   = "SOVEREIGN_ENV"
	EnvLogLevel      = "SOVEREIGN_LOG_LEVEL"
	EnvContentDir    = "SOVEREIGN_CONTENT_DIR"
	EnvBaseURL       = "SOVEREIGN_BASE_URL"
	EnvCookieHashKey = "SOVEREIGN_COOKIE_HASH_KEY"
)

// Config holds server settings. It is built once at startup and never
// mutated afterwards.
type Config struct {
	Addr            string
	Environment     string
	LogLevel        string
	ContentDir      string
	BaseURL         string
	ContactEmail    string
	SiteCookie      string
	CookieHashKey   string
	TLSCert         string
	TLSKey          string
	ShutdownTimeout time.Duration

	// Secrets holds the optional [secrets] table. Environment variables
	// take precedence, see Config.SecretSource.
	Secrets map[string]string
}

// fileConfig is the on-disk TOML layout.
type fileConfig struct {
	Addr              string            `toml:"addr"`
	Environment       string            `toml:"environment"`
	LogLevel          string            `toml:"log_level"`
	ContentDir        string            `toml:"content_dir"`
	BaseURL           string            `toml:"base_url"`
	ContactEmail      string            `toml:"contact_email"`
	SiteCookie        string            `toml:"site_cookie"`
	CookieHashKey     string            `toml:"cookie_hash_key"`
	TLSCert           string            `toml:"tls_cert"`
	TLSKey            string            `toml:"tls_key"`
	ShutdownTimeoutMS int64             `toml:"shutdown_timeout_ms"`
	Secrets           map[string]string `toml:"secrets"`
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		Environment:     EnvDevelopment,
		LogLevel:        "info",
		ContentDir:      "content",
		BaseURL:         "http://localhost:8080",
		ContactEmail:    "chase@sovereignmedia.io",
		SiteCookie:      "sovereign_access",
		ShutdownTimeout: 10 * time.Second,
		Secrets:         map[string]string{},
	}
}

// Load reads path over DefaultConfig, applies environment overrides and
// validates the result. An empty path or a missing file yields the
// defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config stat failed (%s): %w", path, err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("environment") {
		cfg.Environment = strings.ToLower(strings.TrimSpace(raw.Environment))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("content_dir") {
		cfg.ContentDir = strings.TrimSpace(raw.ContentDir)
	}
	if meta.IsDefined("base_url") {
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(raw.BaseURL), "/")
	}
	if meta.IsDefined("contact_email") {
		cfg.ContactEmail = strings.TrimSpace(raw.ContactEmail)
	}
	if meta.IsDefined("site_cookie") {
		cfg.SiteCookie = strings.TrimSpace(raw.SiteCookie)
	}
	if meta.IsDefined("cookie_hash_key") {
		cfg.CookieHashKey = raw.CookieHashKey
	}
	if meta.IsDefined("tls_cert") {
		cfg.TLSCert = strings.TrimSpace(raw.TLSCert)
	}
	if meta.IsDefined("tls_key") {
		cfg.TLSKey = strings.TrimSpace(raw.TLSKey)
	}
	if meta.IsDefined("shutdown_timeout_ms") {
		cfg.ShutdownTimeout = time.Duration(raw.ShutdownTimeoutMS) * time.Millisecond
	}
	for k, v := range raw.Secrets {
		cfg.Secrets[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Addr = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Environment = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvContentDir); v != "" {
		c.ContentDir = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}
	if v := os.Getenv(EnvCookieHashKey); v != "" {
		c.CookieHashKey = v
	}
}

// Validate checks the settings that would otherwise fail at request time.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalid)
	}
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalid, c.Environment)
	}
	if c.SiteCookie == "" {
		return fmt.Errorf("%w: site_cookie is required", ErrInvalid)
	}
	if c.CookieHashKey != "" && len(c.CookieHashKey) < 32 {
		return fmt.Errorf("%w: cookie_hash_key must be at least 32 bytes", ErrInvalid)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("%w: tls_cert and tls_key must be set together", ErrInvalid)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout_ms must be positive", ErrInvalid)
	}
	return nil
}

// TLS reports whether the server should terminate TLS itself.
func (c Config) TLS() bool {
	return c.TLSCert != ""
}

// Production reports whether cookies should carry the Secure attribute.
func (c Config) Production() bool {
	return c.Environment == EnvProduction
}

// SecretSource returns the lookup chain for passwords and tokens: the
// process environment first, then the [secrets] table.
func (c Config) SecretSource() SecretSource {
	return Chain{EnvSource{}, MapSource(c.Secrets)}
}
