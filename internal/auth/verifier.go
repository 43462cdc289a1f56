package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sovereign/internal/config"
)

var (
	// ErrInvalidInput is returned for a missing secret or a malformed scope.
	ErrInvalidInput = errors.New("auth: invalid input")
	// ErrNotConfigured is returned when no expected secret exists for a scope.
	// It is a deployment defect, not a wrong credential.
	ErrNotConfigured = errors.New("auth: secret not configured")
	// ErrCookie is returned when a cookie cannot be read or written.
	ErrCookie = errors.New("auth: cookie store unavailable")
)

var scopePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidScope reports whether id can be used as a client scope. The id ends
// up in cookie names and configuration keys, so it is restricted to a
// conservative alphabet.
func ValidScope(id string) bool {
	return scopePattern.MatchString(id)
}

// Verifier compares submitted secrets against the configured ones.
type Verifier struct {
	secrets config.SecretSource
}

func NewVerifier(secrets config.SecretSource) *Verifier {
	return &Verifier{secrets: secrets}
}

// Verify checks a password for the site (empty scope) or a client scope.
// The comparison is exact; callers trim input before calling. A configured
// value that is a bcrypt hash is compared with bcrypt instead.
func (v *Verifier) Verify(secret string, scope Scope) (bool, error) {
	if secret == "" {
		return false, fmt.Errorf("%w: secret is required", ErrInvalidInput)
	}
	if scope != SiteScope && !ValidScope(string(scope)) {
		return false, fmt.Errorf("%w: malformed scope", ErrInvalidInput)
	}
	expected, ok := config.LookupPassword(v.secrets, string(scope))
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotConfigured, config.PasswordKey(string(scope)))
	}
	return matchSecret(expected, secret), nil
}

// VerifyToken checks an access token against CLIENT_TOKEN_{SCOPE}. Tokens
// live in a separate namespace from passwords and are never bcrypt hashed.
func (v *Verifier) VerifyToken(token string, scope Scope) (bool, error) {
	if token == "" || !ValidScope(string(scope)) {
		return false, fmt.Errorf("%w: token and scope are required", ErrInvalidInput)
	}
	expected, ok := config.LookupToken(v.secrets, string(scope))
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotConfigured, config.TokenKey(string(scope)))
	}
	return constantTimeEqual(expected, token), nil
}

func matchSecret(expected, got string) bool {
	if isBcryptHash(expected) {
		return bcrypt.CompareHashAndPassword([]byte(expected), []byte(got)) == nil
	}
	return constantTimeEqual(expected, got)
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// HashSecret returns a bcrypt hash suitable as a configured password.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: secret is required", ErrInvalidInput)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
