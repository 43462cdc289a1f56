// Package auth verifies shared secrets and keeps the cookie-backed
// capability flags that mark a browser as admitted to the site or to a
// client's proposal pages.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

// Scope names what a session grants access to. The zero value is the
// site-wide gate; anything else is a client id.
type Scope string

const SiteScope Scope = ""

const (
	sessionValue  = "true"
	clientSuffix  = "_access"
	SiteMaxAge    = 7 * 24 * time.Hour
	ClientMaxAge  = 30 * 24 * time.Hour
	TokenMaxAge   = 90 * 24 * time.Hour
	DefaultCookie = "sovereign_access"
)

// SessionStore issues, checks and revokes access flags. Implementations
// must not cache state between requests.
type SessionStore interface {
	Issue(w http.ResponseWriter, scope Scope) error
	Check(r *http.Request, scope Scope) (bool, error)
	Revoke(w http.ResponseWriter, r *http.Request) error
	// Allows reports whether scope can hold a session of its own.
	Allows(scope Scope) bool
}

// TokenJar persists a client access token after a first-visit link.
type TokenJar interface {
	AccessToken(r *http.Request, scope Scope) (string, bool)
	SetAccessToken(w http.ResponseWriter, scope Scope, token string) error
}

// CookieOptions configures a CookieStore.
type CookieOptions struct {
	// SiteName is the site-wide cookie name and the prefix of token cookies.
	SiteName string
	// Secure sets the Secure attribute; enable in production.
	Secure bool
	// Codec signs cookie values. Nil stores values verbatim.
	Codec securecookie.Codec
}

// CookieStore keeps sessions entirely in the browser's cookie jar.
type CookieStore struct {
	siteName string
	secure   bool
	codec    securecookie.Codec
}

var (
	_ SessionStore = (*CookieStore)(nil)
	_ TokenJar     = (*CookieStore)(nil)
)

func NewCookieStore(opts CookieOptions) *CookieStore {
	name := opts.SiteName
	if name == "" {
		name = DefaultCookie
	}
	return &CookieStore{siteName: name, secure: opts.Secure, codec: opts.Codec}
}

// NewSigningCodec returns an HMAC-only securecookie codec for hashKey. The
// codec's own timestamp check is widened to the longest cookie lifetime.
func NewSigningCodec(hashKey []byte) securecookie.Codec {
	return securecookie.New(hashKey, nil).MaxAge(int(TokenMaxAge / time.Second))
}

// CookieName is the session cookie for scope.
func (s *CookieStore) CookieName(scope Scope) string {
	if scope == SiteScope {
		return s.siteName
	}
	return string(scope) + clientSuffix
}

// TokenCookieName is the cookie holding the access token for scope.
func (s *CookieStore) TokenCookieName(scope Scope) string {
	return s.siteName + "_" + string(scope)
}

// Allows refuses client ids whose session cookie would collide with the
// site cookie or a token cookie, e.g. "sovereign" -> "sovereign_access".
func (s *CookieStore) Allows(scope Scope) bool {
	if scope == SiteScope {
		return true
	}
	name := s.CookieName(scope)
	return name != s.siteName && !strings.HasPrefix(name, s.siteName+"_")
}

func (s *CookieStore) Issue(w http.ResponseWriter, scope Scope) error {
	if !s.Allows(scope) {
		return fmt.Errorf("%w: scope %q is reserved", ErrInvalidInput, scope)
	}
	maxAge := ClientMaxAge
	if scope == SiteScope {
		maxAge = SiteMaxAge
	}
	return s.write(w, s.CookieName(scope), sessionValue, maxAge)
}

func (s *CookieStore) Check(r *http.Request, scope Scope) (bool, error) {
	if r == nil {
		return false, fmt.Errorf("%w: no request", ErrCookie)
	}
	if !s.Allows(scope) {
		return false, fmt.Errorf("%w: scope %q is reserved", ErrInvalidInput, scope)
	}
	v, ok := s.read(r, s.CookieName(scope))
	return ok && v == sessionValue, nil
}

// Revoke expires the site cookie, every per-client session cookie and every
// access-token cookie present on the request.
func (s *CookieStore) Revoke(w http.ResponseWriter, r *http.Request) error {
	if r == nil {
		return fmt.Errorf("%w: no request", ErrCookie)
	}
	names := []string{s.siteName}
	seen := map[string]bool{s.siteName: true}
	for _, c := range r.Cookies() {
		if seen[c.Name] {
			continue
		}
		if strings.HasSuffix(c.Name, clientSuffix) || strings.HasPrefix(c.Name, s.siteName+"_") {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	for _, name := range names {
		if err := s.expire(w, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *CookieStore) AccessToken(r *http.Request, scope Scope) (string, bool) {
	if r == nil {
		return "", false
	}
	return s.read(r, s.TokenCookieName(scope))
}

func (s *CookieStore) SetAccessToken(w http.ResponseWriter, scope Scope, token string) error {
	return s.write(w, s.TokenCookieName(scope), token, TokenMaxAge)
}

func (s *CookieStore) write(w http.ResponseWriter, name, value string, maxAge time.Duration) error {
	if w == nil {
		return fmt.Errorf("%w: no response writer", ErrCookie)
	}
	if s.codec != nil {
		encoded, err := s.codec.Encode(name, value)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", ErrCookie, name, err)
		}
		value = encoded
	}
	c := s.cookie(name, value)
	c.MaxAge = int(maxAge / time.Second)
	if err := c.Valid(); err != nil {
		return fmt.Errorf("%w: %v", ErrCookie, err)
	}
	http.SetCookie(w, c)
	return nil
}

func (s *CookieStore) expire(w http.ResponseWriter, name string) error {
	if w == nil {
		return fmt.Errorf("%w: no response writer", ErrCookie)
	}
	c := s.cookie(name, "")
	// Negative MaxAge is serialized as Max-Age=0.
	c.MaxAge = -1
	if err := c.Valid(); err != nil {
		return fmt.Errorf("%w: %v", ErrCookie, err)
	}
	http.SetCookie(w, c)
	return nil
}

func (s *CookieStore) read(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	if s.codec == nil {
		return c.Value, c.Value != ""
	}
	var v string
	if err := s.codec.Decode(name, c.Value, &v); err != nil {
		return "", false
	}
	return v, v != ""
}

func (s *CookieStore) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// IsCookieError reports whether err came from the cookie layer.
func IsCookieError(err error) bool {
	return errors.Is(err, ErrCookie)
}
