// Package gate guards the per-client proposal and portal pages. A request
// is admitted by a token cookie or, on first visit, by a ?token= link that
// is swapped for the cookie and stripped from the address bar.
package gate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"sovereign/internal/auth"
	"sovereign/internal/observability"
)

// TokenParam is the query parameter carried by access links.
const TokenParam = "token"

var DefaultPrefixes = []string{"/proposals", "/portal"}

type Outcome int

const (
	Pass Outcome = iota // not a protected path
	Allow
	Redirect
	Deny
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Deny:
		return "deny"
	}
	return "unknown"
}

// Reason explains a denial. It is logged and counted, never sent to the
// client.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonMissingIdentifier Reason = "missing_identifier"
	ReasonInvalidIdentifier Reason = "invalid_identifier"
	ReasonMissingToken      Reason = "missing_token"
	ReasonInvalidToken      Reason = "invalid_token"
	ReasonNotConfigured     Reason = "not_configured"
)

// Decision is the result of evaluating one request.
type Decision struct {
	Outcome Outcome
	Section string
	Scope   auth.Scope
	// Token is set when it arrived by query and must be persisted.
	Token    string
	Location string
	Reason   Reason
}

// TokenVerifier checks an access token for a client scope.
type TokenVerifier interface {
	VerifyToken(token string, scope auth.Scope) (bool, error)
}

type Options struct {
	Prefixes     []string
	ContactEmail string
	Logger       zerolog.Logger
}

type Gate struct {
	verifier TokenVerifier
	jar      auth.TokenJar
	prefixes []string
	contact  string
	logger   zerolog.Logger
}

func New(verifier TokenVerifier, jar auth.TokenJar, opts Options) *Gate {
	prefixes := opts.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	clean := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		clean = append(clean, "/"+strings.Trim(p, "/"))
	}
	return &Gate{
		verifier: verifier,
		jar:      jar,
		prefixes: clean,
		contact:  opts.ContactEmail,
		logger:   opts.Logger,
	}
}

// section returns the protected prefix r falls under, if any.
func (g *Gate) section(path string) (string, bool) {
	for _, p := range g.prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return p, true
		}
	}
	return "", false
}

// Decide evaluates r without writing anything.
func (g *Gate) Decide(r *http.Request) Decision {
	section, ok := g.section(r.URL.Path)
	if !ok {
		return Decision{Outcome: Pass}
	}
	d := Decision{Section: strings.TrimPrefix(section, "/")}

	// /proposals/{id}/... -> id
	rest := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, section), "/")
	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return d.deny(ReasonMissingIdentifier)
	}
	if !auth.ValidScope(id) {
		return d.deny(ReasonInvalidIdentifier)
	}
	d.Scope = auth.Scope(id)

	query := r.URL.Query()
	queryToken := query.Get(TokenParam)
	_, hasParam := query[TokenParam]

	if cookieToken, ok := g.jar.AccessToken(r, d.Scope); ok {
		valid, err := g.verifier.VerifyToken(cookieToken, d.Scope)
		if errors.Is(err, auth.ErrNotConfigured) {
			return d.deny(ReasonNotConfigured)
		}
		if valid {
			if hasParam {
				d.Outcome = Redirect
				d.Location = stripToken(r)
				return d
			}
			d.Outcome = Allow
			return d
		}
		// A stale cookie falls through to the link token.
	}

	if queryToken == "" {
		return d.deny(ReasonMissingToken)
	}
	valid, err := g.verifier.VerifyToken(queryToken, d.Scope)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		return d.deny(ReasonNotConfigured)
	case err != nil || !valid:
		return d.deny(ReasonInvalidToken)
	}
	d.Outcome = Redirect
	d.Token = queryToken
	d.Location = stripToken(r)
	return d
}

func (d Decision) deny(reason Reason) Decision {
	d.Outcome = Deny
	d.Reason = reason
	return d
}

// stripToken rebuilds the request path and query without the token param.
func stripToken(r *http.Request) string {
	q := r.URL.Query()
	q.Del(TokenParam)
	loc := r.URL.EscapedPath()
	if enc := q.Encode(); enc != "" {
		loc += "?" + enc
	}
	return loc
}

// Middleware enforces Decide. Unprotected paths go straight to next.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Decide(r)
		if d.Outcome == Pass {
			next.ServeHTTP(w, r)
			return
		}
		observability.RecordGateDecision(d.Section, d.Outcome.String(), string(d.Reason))

		if d.Outcome == Allow {
			next.ServeHTTP(w, r)
			return
		}
		observability.SetRoute(r.Context(), routeLabel(d))
		switch d.Outcome {
		case Redirect:
			if d.Token != "" {
				if err := g.jar.SetAccessToken(w, d.Scope, d.Token); err != nil {
					g.logger.Error().Err(err).
						Str("request_id", observability.RequestIDFrom(r.Context())).
						Str("scope", string(d.Scope)).
						Msg("gate could not set access cookie")
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
					return
				}
			}
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
		default:
			g.logDenial(r, d)
			g.deny(w)
		}
	})
}

// routeLabel keeps client ids out of the access log path label.
func routeLabel(d Decision) string {
	if d.Scope == "" {
		return "/" + d.Section
	}
	return "/" + d.Section + "/{id}"
}

func (g *Gate) logDenial(r *http.Request, d Decision) {
	event := g.logger.Warn()
	if d.Reason == ReasonNotConfigured {
		event = g.logger.Error()
	}
	event.
		Str("request_id", observability.RequestIDFrom(r.Context())).
		Str("section", d.Section).
		Str("scope", string(d.Scope)).
		Str("reason", string(d.Reason)).
		Msg("gate denied")
}

// DenialBody is the only denial response; it is identical for every
// reason.
type DenialBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (g *Gate) denialBody() DenialBody {
	msg := "This page requires authentication."
	if g.contact != "" {
		msg += " Contact " + g.contact + " for access."
	}
	return DenialBody{Error: "access_denied", Message: msg}
}

func (g *Gate) deny(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusUnauthorized, g.denialBody())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
