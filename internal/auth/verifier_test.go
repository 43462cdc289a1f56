package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovereign/internal/config"
)

func testSecrets() config.MapSource {
	return config.MapSource{
		"SITE_PASSWORD":       "open-sesame",
		"FRONTIERAS_PASSWORD": "rocket",
		"CLIENT_TOKEN_ACME":   "XYZ",
	}
}

func TestVerify(t *testing.T) {
	v := NewVerifier(testSecrets())

	tests := []struct {
		name    string
		secret  string
		scope   Scope
		want    bool
		wantErr error
	}{
		{name: "site match", secret: "open-sesame", scope: SiteScope, want: true},
		{name: "site mismatch", secret: "open-sesame2", scope: SiteScope, want: false},
		{name: "client match", secret: "rocket", scope: "frontieras", want: true},
		{name: "client lookup uppercases scope", secret: "rocket", scope: "Frontieras", want: true},
		{name: "no normalization", secret: " rocket", scope: "frontieras", want: false},
		{name: "empty secret", secret: "", scope: SiteScope, wantErr: ErrInvalidInput},
		{name: "malformed scope", secret: "rocket", scope: "../etc", wantErr: ErrInvalidInput},
		{name: "unconfigured scope", secret: "rocket", scope: "nobody", wantErr: ErrNotConfigured},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := v.Verify(tc.secret, tc.scope)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVerifyNotConfiguredNamesTheKey(t *testing.T) {
	_, err := NewVerifier(config.MapSource{}).Verify("x", "acme")
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "ACME_PASSWORD")
}

func TestVerifyBcryptConfiguredSecret(t *testing.T) {
	hash, err := HashSecret("rocket")
	require.NoError(t, err)

	v := NewVerifier(config.MapSource{"FRONTIERAS_PASSWORD": hash})

	ok, err := v.Verify("rocket", "frontieras")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify("rocket!", "frontieras")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Verify(hash, "frontieras")
	require.NoError(t, err)
	assert.False(t, ok, "the hash itself is not the password")
}

func TestVerifyToken(t *testing.T) {
	v := NewVerifier(testSecrets())

	ok, err := v.VerifyToken("XYZ", "acme")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.VerifyToken("xyz", "acme")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.VerifyToken("XYZ", "globex")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = v.VerifyToken("", "acme")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = v.VerifyToken("rocket", "frontieras")
	assert.ErrorIs(t, err, ErrNotConfigured, "passwords are not tokens")
}

func TestHashSecretRejectsEmpty(t *testing.T) {
	_, err := HashSecret("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidScope(t *testing.T) {
	assert.True(t, ValidScope("acme"))
	assert.True(t, ValidScope("acme-co_2"))
	assert.False(t, ValidScope(""))
	assert.False(t, ValidScope("-acme"))
	assert.False(t, ValidScope("acme co"))
	assert.False(t, ValidScope("acme;evil"))
}
