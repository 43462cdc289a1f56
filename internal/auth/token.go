package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// PortalKind selects which gated section an access link points at.
type PortalKind string

const (
	KindProposals PortalKind = "proposals"
	KindPortal    PortalKind = "portal"
)

// TokenBytes is the entropy of a generated client token.
const TokenBytes = 32

// GenerateToken returns a random hex token for CLIENT_TOKEN_{ID}.
func GenerateToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// AccessURL builds the first-visit link for a client:
// {base}/{kind}/{clientID}?token={token}.
func AccessURL(base, clientID, token string, kind PortalKind) (string, error) {
	if !ValidScope(clientID) {
		return "", fmt.Errorf("%w: malformed client id %q", ErrInvalidInput, clientID)
	}
	if token == "" {
		return "", fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if kind == "" {
		kind = KindProposals
	}
	if kind != KindProposals && kind != KindPortal {
		return "", fmt.Errorf("%w: unknown portal kind %q", ErrInvalidInput, kind)
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("%w: base url: %v", ErrInvalidInput, err)
	}
	u = u.JoinPath(string(kind), clientID)
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}
