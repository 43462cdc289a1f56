package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "SITE_PASSWORD", PasswordKey(""))
	assert.Equal(t, "FRONTIERAS_PASSWORD", PasswordKey("frontieras"))
	assert.Equal(t, "CLIENT_TOKEN_ACME", TokenKey("acme"))
}

func TestChainPrefersEarlierSources(t *testing.T) {
	src := Chain{
		MapSource{"CLIENT_TOKEN_ACME": "from-first"},
		nil,
		MapSource{"CLIENT_TOKEN_ACME": "from-second", "SITE_PASSWORD": "site"},
	}

	tok, ok := LookupToken(src, "acme")
	assert.True(t, ok)
	assert.Equal(t, "from-first", tok)

	pw, ok := LookupPassword(src, "")
	assert.True(t, ok)
	assert.Equal(t, "site", pw)

	_, ok = LookupPassword(src, "unknown")
	assert.False(t, ok)
}

func TestEmptyValuesCountAsUnset(t *testing.T) {
	t.Setenv("ACME_PASSWORD", "")
	_, ok := EnvSource{}.Lookup("ACME_PASSWORD")
	assert.False(t, ok)

	_, ok = MapSource{"ACME_PASSWORD": ""}.Lookup("ACME_PASSWORD")
	assert.False(t, ok)
}

func TestEnvSourceWinsInConfigChain(t *testing.T) {
	t.Setenv("SITE_PASSWORD", "from-env")
	cfg := DefaultConfig()
	cfg.Secrets["SITE_PASSWORD"] = "from-file"

	pw, ok := LookupPassword(cfg.SecretSource(), "")
	assert.True(t, ok)
	assert.Equal(t, "from-env", pw)
}

func TestLookupTokenRequiresScope(t *testing.T) {
	_, ok := LookupToken(MapSource{"CLIENT_TOKEN_": "x"}, "")
	assert.False(t, ok)
}
