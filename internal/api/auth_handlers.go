package api

import (
	"errors"
	"net/http"
	"strings"

	"sovereign/internal/auth"
	"sovereign/internal/config"
	"sovereign/internal/observability"
)

type verifyRequest struct {
	Secret   string `json:"secret"`
	Password string `json:"password"`
	Scope    string `json:"scope"`
	ClientID string `json:"clientId"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

type checkResponse struct {
	Authenticated bool `json:"authenticated"`
}

type logoutResponse struct {
	Cleared bool `json:"cleared"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// VerifyHandler checks the site password, or a client password when a
// scope is given, and issues the matching session cookie.
func (s *Server) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		JSONResponse(w, http.StatusBadRequest, verifyResponse{})
		return
	}
	secret := strings.TrimSpace(firstNonEmpty(req.Secret, req.Password))
	scope := auth.Scope(strings.TrimSpace(firstNonEmpty(req.Scope, req.ClientID)))
	s.verify(w, r, secret, scope)
}

// VerifyClientHandler requires both password and clientId.
func (s *Server) VerifyClientHandler(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		JSONResponse(w, http.StatusBadRequest, verifyResponse{})
		return
	}
	secret := strings.TrimSpace(req.Password)
	clientID := strings.TrimSpace(req.ClientID)
	if secret == "" || clientID == "" {
		JSONResponse(w, http.StatusBadRequest, verifyResponse{})
		return
	}
	s.verify(w, r, secret, auth.Scope(clientID))
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request, secret string, scope auth.Scope) {
	kind := "client"
	if scope == auth.SiteScope {
		kind = "site"
	}
	log := s.logger.With().
		Str("request_id", observability.RequestIDFrom(r.Context())).
		Str("scope", string(scope)).
		Logger()

	if !s.sessions.Allows(scope) {
		log.Warn().Msg("reserved scope")
		JSONResponse(w, http.StatusBadRequest, verifyResponse{})
		return
	}

	ok, err := s.verifier.Verify(secret, scope)
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		JSONResponse(w, http.StatusBadRequest, verifyResponse{})
		return
	case errors.Is(err, auth.ErrNotConfigured):
		log.Error().Str("key", config.PasswordKey(string(scope))).Msg("no password configured for scope")
		JSONResponse(w, http.StatusInternalServerError, verifyResponse{})
		return
	case err != nil:
		log.Error().Err(err).Msg("verify failed")
		JSONResponse(w, http.StatusInternalServerError, verifyResponse{})
		return
	}

	observability.RecordVerify(kind, ok)
	if !ok {
		log.Info().Msg("password rejected")
		JSONResponse(w, http.StatusOK, verifyResponse{})
		return
	}
	if err := s.sessions.Issue(w, scope); err != nil {
		log.Error().Err(err).Msg("issue session cookie")
		JSONResponse(w, http.StatusInternalServerError, verifyResponse{})
		return
	}
	JSONResponse(w, http.StatusOK, verifyResponse{Valid: true})
}

// CheckHandler reports the site session, or a client session for ?scope=
// (or ?clientId=).
func (s *Server) CheckHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope := auth.Scope(firstNonEmpty(q.Get("scope"), q.Get("clientId")))
	s.check(w, r, scope)
}

// CheckClientHandler requires ?clientId=.
func (s *Server) CheckClientHandler(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		JSONResponse(w, http.StatusBadRequest, checkResponse{})
		return
	}
	s.check(w, r, auth.Scope(clientID))
}

func (s *Server) check(w http.ResponseWriter, r *http.Request, scope auth.Scope) {
	if scope != auth.SiteScope && (!auth.ValidScope(string(scope)) || !s.sessions.Allows(scope)) {
		JSONResponse(w, http.StatusBadRequest, checkResponse{})
		return
	}
	ok, err := s.sessions.Check(r, scope)
	if err != nil {
		s.logger.Error().Err(err).Str("scope", string(scope)).Msg("check session")
		JSONResponse(w, http.StatusInternalServerError, checkResponse{})
		return
	}
	JSONResponse(w, http.StatusOK, checkResponse{Authenticated: ok})
}

// LogoutHandler clears the site session and every client session.
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Revoke(w, r); err != nil {
		s.logger.Error().Err(err).Msg("revoke sessions")
		ErrorResponse(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, logoutResponse{Cleared: true})
}
