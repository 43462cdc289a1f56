package config

import (
	"os"
	"strings"
)

const (
	sitePasswordKey = "SITE_PASSWORD"
	passwordSuffix  = "_PASSWORD"
	tokenPrefix     = "CLIENT_TOKEN_"
)

// SecretSource is a read-only key/value store of expected secrets.
type SecretSource interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads from the process environment. Empty values count as
// unset.
type EnvSource struct{}

func (EnvSource) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// MapSource is a static in-memory source. Keys are matched exactly.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Chain consults each source in order and returns the first hit.
type Chain []SecretSource

func (c Chain) Lookup(key string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// PasswordKey is SITE_PASSWORD for the empty scope and {SCOPE}_PASSWORD
// otherwise.
func PasswordKey(scope string) string {
	if scope == "" {
		return sitePasswordKey
	}
	return strings.ToUpper(scope) + passwordSuffix
}

// TokenKey is CLIENT_TOKEN_{SCOPE}.
func TokenKey(scope string) string {
	return tokenPrefix + strings.ToUpper(scope)
}

func LookupPassword(src SecretSource, scope string) (string, bool) {
	return src.Lookup(PasswordKey(scope))
}

func LookupToken(src SecretSource, scope string) (string, bool) {
	if scope == "" {
		return "", false
	}
	return src.Lookup(TokenKey(scope))
}
