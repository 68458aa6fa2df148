package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-content-cache/internal/config"
	"go-content-cache/internal/content"
	"go-content-cache/internal/sweeper"
)

const maxRequestBody = 1 << 20

// Server represents the content HTTP server
type Server struct {
	content *content.Service
	sweeper *sweeper.AutoClear
	policy  config.CachePolicy
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a new content HTTP server
func NewServer(contentService *content.Service, autoClear *sweeper.AutoClear, policy config.CachePolicy, logger *zap.Logger) *Server {
	s := &Server{
		content: contentService,
		sweeper: autoClear,
		policy:  policy,
		logger:  logger,
	}
	s.server = &http.Server{
		Handler:      s.createRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start listens on addr and serves until Stop is called
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.logger.Info("Starting content HTTP server", zap.String("addr", listener.Addr().String()))
	return s.server.Serve(listener)
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping content HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	// Content endpoints; fixed paths before the slug catch-all
	api := router.PathPrefix("/api/cakes").Subrouter()
	api.HandleFunc("", s.handleAllCakes).Methods("GET")
	api.HandleFunc("/featured", s.handleFeaturedCakes).Methods("GET")
	api.HandleFunc("/category/{category}", s.handleCakesByCategory).Methods("GET")
	api.HandleFunc("/{slug}", s.handleCakeBySlug).Methods("GET")

	// Cache control
	router.HandleFunc("/cache/clear", s.handleClear).Methods("POST")
	router.HandleFunc("/cache/invalidate", s.handleInvalidate).Methods("POST")
	router.HandleFunc("/cache/auto-clear", s.handleAutoClearStatus).Methods("GET")
	router.HandleFunc("/cache/auto-clear/start", s.handleAutoClearStart).Methods("POST")
	router.HandleFunc("/cache/auto-clear/stop", s.handleAutoClearStop).Methods("POST")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return err
	}

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	response := &ActionResponse{
		Success: false,
		Error:   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
