package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sovereign/internal/observability"
)

// NewRouter wires every route onto a fresh mux. The route gate is not part
// of the router; Handler wraps it around the whole thing so unmatched
// protected paths are denied rather than 404'd.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.Use(observability.TagRoute)

	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(noCache)
	authAPI.HandleFunc("/verify", s.VerifyHandler).Methods(http.MethodPost)
	authAPI.HandleFunc("/verify-client", s.VerifyClientHandler).Methods(http.MethodPost)
	authAPI.HandleFunc("/check", s.CheckHandler).Methods(http.MethodGet)
	authAPI.HandleFunc("/check-client", s.CheckClientHandler).Methods(http.MethodGet)
	authAPI.HandleFunc("/logout", s.LogoutHandler).Methods(http.MethodPost)

	r.HandleFunc("/api/calculators/reg-a", s.CalculatorConfigHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/calculators/reg-a/roi", s.ROIHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/calculators/reg-a/ipo", s.IPOHandler).Methods(http.MethodPost)

	r.HandleFunc("/api/projects", s.ListProjectsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/categories", s.ProjectCategoriesHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/tags", s.ProjectTagsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{slug}", s.GetProjectHandler).Methods(http.MethodGet)

	r.HandleFunc("/proposals/{id}", s.PortalHandler).Methods(http.MethodGet)
	r.HandleFunc("/portal/{id}", s.PortalHandler).Methods(http.MethodGet)
	r.HandleFunc("/portal/{id}/timeline", s.TimelineHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSONResponse(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSONResponse(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})
	return r
}

// noCache keeps auth state out of every intermediary cache.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}
