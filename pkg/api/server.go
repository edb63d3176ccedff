// Package api serves the catalog search endpoint over HTTP. It is the
// concrete backend the remote client consumes: a thin gorilla/mux layer over
// the local catalog index.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

// ServerConfig holds the HTTP server knobs.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default listen configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server is the catalog REST API server.
type Server struct {
	index      *catalog.Index
	router     *mux.Router
	httpServer *http.Server
	config     ServerConfig
}

// SearchResponse is the search endpoint payload.
type SearchResponse struct {
	Success bool              `json:"success"`
	Results catalog.ResultSet `json:"results"`
	Count   int               `json:"count"`
	Query   string            `json:"query"`
}

// ProductResponse is the detail endpoint payload.
type ProductResponse struct {
	Success bool            `json:"success"`
	Product catalog.Product `json:"product"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewServer builds a server over the given index.
func NewServer(index *catalog.Index, config ServerConfig) *Server {
	s := &Server{
		index:  index,
		config: config,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.Use(loggingMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/v1/search", s.handleSearch).Methods("GET")
	s.router.HandleFunc("/api/v1/products/{name}", s.handleProduct).Methods("GET")
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Stop or a listener error.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Infof("Serving catalog API on %s", s.config.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"products": s.index.Len(),
	})
}

// handleSearch answers GET /api/v1/search?q=&limit=&min_sim=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondWithError(w, http.StatusBadRequest, "Missing 'q' parameter")
		return
	}

	opts := catalog.Options{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		opts.Limit = limit
	}
	if raw := r.URL.Query().Get("min_sim"); raw != "" {
		minSim, err := strconv.ParseFloat(raw, 64)
		if err != nil || minSim < 0 || minSim > 1 {
			s.respondWithError(w, http.StatusBadRequest, "Invalid 'min_sim' parameter")
			return
		}
		opts.MinSimilarity = minSim
	}

	results, err := s.index.Search(r.Context(), query, opts)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = catalog.ResultSet{}
	}

	s.respondWithJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Results: results,
		Count:   len(results),
		Query:   query,
	})
}

// handleProduct answers GET /api/v1/products/{name}.
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	product, err := s.index.Detail(r.Context(), name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		s.respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondWithJSON(w, http.StatusOK, ProductResponse{Success: true, Product: product})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, ErrorResponse{Success: false, Error: message})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
	})
}
