package httpserver

import (
	"net/http"
)

// handleClear handles POST /cache/clear
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.sweeper.ClearAll()

	s.writeResponse(w, &ActionResponse{Success: true})
}

// handleInvalidate handles POST /cache/invalidate
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	s.sweeper.ClearPattern(req.Pattern)

	s.writeResponse(w, &ActionResponse{
		Success: true,
		Pattern: req.Pattern,
	})
}

// handleAutoClearStatus handles GET /cache/auto-clear
func (s *Server) handleAutoClearStatus(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, s.sweeper.Status())
}

// handleAutoClearStart handles POST /cache/auto-clear/start.
// The sweeper stays idle unless both of its gates are open.
func (s *Server) handleAutoClearStart(w http.ResponseWriter, r *http.Request) {
	s.sweeper.Start()

	s.writeResponse(w, s.sweeper.Status())
}

// handleAutoClearStop handles POST /cache/auto-clear/stop
func (s *Server) handleAutoClearStop(w http.ResponseWriter, r *http.Request) {
	s.sweeper.Stop()

	s.writeResponse(w, s.sweeper.Status())
}
