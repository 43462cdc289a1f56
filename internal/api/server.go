// Package api is the HTTP surface: auth endpoints, the calculator API, the
// portfolio and the gated portal pages.
package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sovereign/internal/auth"
	"sovereign/internal/calc"
	"sovereign/internal/config"
	"sovereign/internal/gate"
	"sovereign/internal/observability"
	"sovereign/internal/portal"
	"sovereign/internal/portfolio"
)

// Deps are the collaborators a Server needs. Zero-valued optional fields
// get defaults in NewServer.
type Deps struct {
	Config    config.Config
	Secrets   config.SecretSource
	Portals   *portal.Catalog
	Projects  *portfolio.Portfolio
	Constants *calc.Constants
	Sliders   *calc.Sliders
	Logger    zerolog.Logger
	Now       func() time.Time
}

type Server struct {
	cfg       config.Config
	verifier  *auth.Verifier
	sessions  auth.SessionStore
	gate      *gate.Gate
	portals   *portal.Catalog
	projects  *portfolio.Portfolio
	constants calc.Constants
	sliders   calc.Sliders
	logger    zerolog.Logger
	now       func() time.Time
	started   time.Time
}

func NewServer(d Deps) (*Server, error) {
	secrets := d.Secrets
	if secrets == nil {
		secrets = d.Config.SecretSource()
	}
	portals := d.Portals
	if portals == nil {
		var err error
		if portals, err = portal.NewCatalog(); err != nil {
			return nil, err
		}
	}
	projects := d.Projects
	if projects == nil {
		var err error
		if projects, err = portfolio.New(); err != nil {
			return nil, err
		}
	}
	constants := calc.DefaultConstants()
	if d.Constants != nil {
		constants = *d.Constants
	}
	sliders := calc.DefaultSliders()
	if d.Sliders != nil {
		sliders = *d.Sliders
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	opts := auth.CookieOptions{SiteName: d.Config.SiteCookie, Secure: d.Config.Production()}
	if d.Config.CookieHashKey != "" {
		opts.Codec = auth.NewSigningCodec([]byte(d.Config.CookieHashKey))
	}
	store := auth.NewCookieStore(opts)
	verifier := auth.NewVerifier(secrets)

	return &Server{
		cfg:      d.Config,
		verifier: verifier,
		sessions: store,
		gate: gate.New(verifier, store, gate.Options{
			ContactEmail: d.Config.ContactEmail,
			Logger:       d.Logger,
		}),
		portals:   portals,
		projects:  projects,
		constants: constants,
		sliders:   sliders,
		logger:    d.Logger,
		now:       now,
		started:   now(),
	}, nil
}

// Handler is the full middleware chain around the router. The access log
// sits outside the gate so redirects and denials are recorded too.
func (s *Server) Handler() http.Handler {
	var h http.Handler = NewRouter(s)
	h = s.gate.Middleware(h)
	h = observability.RequestLogger(s.logger)(h)
	h = observability.Recover(s.logger)(h)
	return observability.RequestID(h)
}
