package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"sovereign/internal/models"
	"sovereign/internal/portfolio"
	"sovereign/internal/utils"
)

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Portals  int    `json:"portals"`
	Projects int    `json:"projects"`
}

// HealthHandler reports liveness and how much content was loaded.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Uptime:   s.now().Sub(s.started).Round(time.Second).String(),
		Portals:  s.portals.Len(),
		Projects: s.projects.Len(),
	})
}

// PortalHandler returns a client's proposal or portal definition. The gate
// has already admitted the request.
func (s *Server) PortalHandler(w http.ResponseWriter, r *http.Request) {
	p, err := s.portals.Get(mux.Vars(r)["id"])
	if err != nil {
		ErrorResponse(w, err)
		return
	}
	w.Header().Set("Cache-Control", "private, no-store")
	JSONResponse(w, http.StatusOK, p)
}

// TimelineHandler lays out the portal's milestones against the current
// clock.
func (s *Server) TimelineHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.portals.Timeline(mux.Vars(r)["id"], s.now())
	if err != nil {
		ErrorResponse(w, err)
		return
	}
	w.Header().Set("Cache-Control", "private, no-store")
	JSONResponse(w, http.StatusOK, view)
}

type projectList struct {
	Projects []models.Project `json:"projects"`
}

// ListProjectsHandler lists projects newest first, optionally filtered by
// ?category= and ?featured=true. Bodies are left out of the listing.
func (s *Server) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f portfolio.Filter

	if raw := q.Get("category"); raw != "" {
		f.Category = models.Category(raw)
		if !f.Category.Valid() {
			ErrorResponse(w, utils.BadRequest("category", "unknown category", nil))
			return
		}
	}
	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			ErrorResponse(w, utils.BadRequest("featured", "must be a boolean", err))
			return
		}
		f.FeaturedOnly = featured
	}

	projects := s.projects.Filter(f)
	for i := range projects {
		projects[i].Body = ""
	}
	JSONResponse(w, http.StatusOK, projectList{Projects: projects})
}

func (s *Server) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	p, err := s.projects.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		ErrorResponse(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, p)
}

// ProjectCategoriesHandler lists the categories that have at least one
// project, in portfolio order.
func (s *Server) ProjectCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string][]models.Category{"categories": s.projects.Categories()})
}

func (s *Server) ProjectTagsHandler(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string][]string{"tags": s.projects.Tags()})
}
