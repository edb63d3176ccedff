package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/veldt-labs/chemseek/pkg/catalog"
	"github.com/veldt-labs/chemseek/pkg/config"
	"github.com/veldt-labs/chemseek/pkg/search"
)

// Server handles the IPC for catalog search.
type Server struct {
	searcher catalog.Searcher
	detailer catalog.Detailer
	cfg      *config.Config
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
}

// NewServer creates an IPC server using stdin/stdout. detailer may be nil,
// in which case detail requests report an error.
func NewServer(searcher catalog.Searcher, detailer catalog.Detailer, cfg *config.Config) *Server {
	return NewServerWithIO(searcher, detailer, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO wires the server to explicit streams. Used by tests.
func NewServerWithIO(searcher catalog.Searcher, detailer catalog.Detailer, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		searcher: searcher,
		detailer: detailer,
		cfg:      cfg,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. Returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting IPC server.")

	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// A mid-stream decode error leaves the decoder at an unknown
			// offset; bail out instead of spinning on bad bytes.
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(request)
	}
}

func (s *Server) handleRequest(request Request) {
	switch request.Op {
	case "search":
		s.handleSearch(request)
	case "detail":
		s.handleDetail(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// handleSearch validates the request, runs the lookup and sends candidates
// with their display tier attached.
func (s *Server) handleSearch(request Request) {
	query := request.Query

	if query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return
	}
	if len(query) < s.cfg.Search.MinQuery {
		s.sendError(request.ID, fmt.Sprintf("Query must be at least %d characters", s.cfg.Search.MinQuery), 400)
		return
	}
	if len(query) > s.cfg.Search.MaxQuery {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", s.cfg.Search.MaxQuery), 400)
		return
	}

	limit := request.Limit
	if limit < 1 || limit > s.cfg.Search.MaxLimit {
		limit = s.cfg.Search.MaxLimit
	}

	start := time.Now()
	results, err := s.searcher.Search(context.Background(), query, catalog.Options{
		Limit:         limit,
		MinSimilarity: s.cfg.Client.MinSimilarity,
	})
	elapsed := time.Since(start)

	if err != nil {
		// Same degradation as the UI path: empty suggestions, logged diagnostic.
		log.Warnf("Lookup for %q failed: %v", query, err)
		results = nil
	}

	candidates := make([]ResponseCandidate, 0, len(results))
	for _, c := range results {
		rc := ResponseCandidate{
			Name:     c.Name,
			ImageURL: c.ImageURL,
		}
		if c.Similarity != nil {
			rc.Similarity = *c.Similarity
			rc.Tier = search.TierFor(*c.Similarity).Label()
		}
		candidates = append(candidates, rc)
	}

	s.sendResponse(SearchResponse{
		ID:         request.ID,
		Candidates: candidates,
		Count:      len(candidates),
		TimeTaken:  elapsed.Milliseconds(),
	})
}

func (s *Server) handleDetail(request Request) {
	if request.Name == "" {
		s.sendError(request.ID, "Missing 'name' parameter", 400)
		return
	}
	if s.detailer == nil {
		s.sendError(request.ID, "Detail lookups not available", 501)
		return
	}

	product, err := s.detailer.Detail(context.Background(), request.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.sendError(request.ID, "Product not found", 404)
			return
		}
		log.Errorf("Detail lookup for %q: %v", request.Name, err)
		s.sendError(request.ID, "Detail lookup failed", 500)
		return
	}

	s.sendResponse(DetailResponse{
		ID:         request.ID,
		Name:       product.Name,
		ImageURL:   product.ImageURL,
		Summary:    product.Summary,
		Popularity: product.Popularity,
	})
}

func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
