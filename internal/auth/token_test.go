package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, TokenBytes*2)
	assert.NotEqual(t, a, b)
}

func TestAccessURL(t *testing.T) {
	got, err := AccessURL("https://sovereignmedia.io/", "frontieras", "abc123", "")
	require.NoError(t, err)
	assert.Equal(t, "https://sovereignmedia.io/proposals/frontieras?token=abc123", got)

	got, err = AccessURL("http://localhost:8080", "acme", "a b&c", KindPortal)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/portal/acme?token=a+b%26c", got)
}

func TestAccessURLRejectsBadInput(t *testing.T) {
	_, err := AccessURL("https://x.io", "bad id", "tok", KindPortal)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = AccessURL("https://x.io", "acme", "", KindPortal)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = AccessURL("https://x.io", "acme", "tok", "admin")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
