package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"go-content-cache/internal/config"
)

// handleAllCakes handles GET /api/cakes
func (s *Server) handleAllCakes(w http.ResponseWriter, r *http.Request) {
	preview, ok := s.previewFlag(w, r)
	if !ok {
		return
	}

	cakes, err := s.content.AllCakes(r.Context(), preview)
	if err != nil {
		s.writeContentError(w, err)
		return
	}
	s.writeContent(w, preview, cakes)
}

// handleFeaturedCakes handles GET /api/cakes/featured
func (s *Server) handleFeaturedCakes(w http.ResponseWriter, r *http.Request) {
	preview, ok := s.previewFlag(w, r)
	if !ok {
		return
	}

	cakes, err := s.content.FeaturedCakes(r.Context(), preview)
	if err != nil {
		s.writeContentError(w, err)
		return
	}
	s.writeContent(w, preview, cakes)
}

// handleCakesByCategory handles GET /api/cakes/category/{category}
func (s *Server) handleCakesByCategory(w http.ResponseWriter, r *http.Request) {
	preview, ok := s.previewFlag(w, r)
	if !ok {
		return
	}

	cakes, err := s.content.CakesByCategory(r.Context(), mux.Vars(r)["category"], preview)
	if err != nil {
		s.writeContentError(w, err)
		return
	}
	s.writeContent(w, preview, cakes)
}

// handleCakeBySlug handles GET /api/cakes/{slug}
func (s *Server) handleCakeBySlug(w http.ResponseWriter, r *http.Request) {
	preview, ok := s.previewFlag(w, r)
	if !ok {
		return
	}

	slug := mux.Vars(r)["slug"]
	cake, err := s.content.CakeBySlug(r.Context(), slug, preview)
	if err != nil {
		s.writeContentError(w, err)
		return
	}
	if cake == nil {
		s.writeErrorResponse(w, fmt.Sprintf("cake %q not found", slug), http.StatusNotFound)
		return
	}
	s.writeContent(w, preview, cake)
}

// previewFlag reads the optional preview query parameter
func (s *Server) previewFlag(w http.ResponseWriter, r *http.Request) (bool, bool) {
	raw := r.URL.Query().Get("preview")
	if raw == "" {
		return false, true
	}

	preview, err := strconv.ParseBool(raw)
	if err != nil {
		s.writeErrorResponse(w, "Invalid preview flag", http.StatusBadRequest)
		return false, false
	}
	return preview, true
}

// writeContent writes v with the render-tier caching hint
func (s *Server) writeContent(w http.ResponseWriter, preview bool, v interface{}) {
	w.Header().Set("Cache-Control", s.cacheControl(preview))
	s.writeResponse(w, v)
}

func (s *Server) cacheControl(preview bool) string {
	seconds := int(s.policy.Revalidate.Seconds())
	if preview || seconds <= 0 {
		return "no-store"
	}
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", seconds)
}

// writeContentError maps content service errors onto HTTP statuses
func (s *Server) writeContentError(w http.ResponseWriter, err error) {
	var missing *config.MissingSettingsError
	if errors.As(err, &missing) {
		s.logger.Error("Content source is not configured", zap.Strings("missing", missing.Names))
		s.writeErrorResponse(w, missing.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Error("Content request failed", zap.Error(err))
	s.writeErrorResponse(w, "Internal error", http.StatusInternalServerError)
}
