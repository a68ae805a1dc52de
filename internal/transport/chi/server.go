// Package chi exposes the search engine over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/studx-cloud/listdex/internal/domain"
	"github.com/studx-cloud/listdex/internal/domain/listing"
	"github.com/studx-cloud/listdex/internal/domain/search/request"
	feeduc "github.com/studx-cloud/listdex/internal/usecase/feed"
	healthuc "github.com/studx-cloud/listdex/internal/usecase/health"
	searchuc "github.com/studx-cloud/listdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services onto HTTP routes.
type Server struct {
	search        *searchuc.Service
	feed          *feeduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	pageSizes     request.Sizes
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	feed *feeduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		feed:   feed,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrInvalidSourceType, http.StatusBadRequest, codeInvalidType),
	}
	return s
}

// WithPageSizes overrides the default and maximum search page sizes.
func (s *Server) WithPageSizes(defaultSize, maxSize int) *Server {
	s.pageSizes = request.Sizes{Default: defaultSize, Max: maxSize}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Get("/api/v1/search", s.SearchListings)
	r.Get("/api/v1/listings", s.ListFeed)
	r.Get("/api/v1/listings/similar", s.SimilarListings)
	r.Get("/health", s.Health)
}

// SearchListings handles GET /api/v1/search.
func (s *Server) SearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	typ := r.URL.Query().Get("type")

	page, ok := s.intParam(w, r, "page")
	if !ok {
		return
	}
	pageSize, ok := s.intParam(w, r, "pageSize")
	if !ok {
		return
	}

	req, err := request.New(q, typ, page, pageSize, s.pageSizes)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	pageRes, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(pageRes.Results))
	for i := range pageRes.Results {
		items[i] = resultToItem(&pageRes.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Query:   req.Query(),
		Type:    string(req.Scope()),
		Results: items,
		Counts: countsResponse{
			Sponsored: pageRes.Counts.Sponsored,
			Regular:   pageRes.Counts.Regular,
			Total:     pageRes.Counts.Total,
		},
	})
}

// ListFeed handles GET /api/v1/listings.
func (s *Server) ListFeed(w http.ResponseWriter, r *http.Request) {
	page, ok := s.intParam(w, r, "page")
	if !ok {
		return
	}
	pageSize, ok := s.intParam(w, r, "pageSize")
	if !ok {
		return
	}

	feedPage, err := s.feed.List(r.Context(), page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]listingItem, len(feedPage.Listings))
	for i := range feedPage.Listings {
		items[i] = recordToItem(feedPage.Listings[i])
	}

	writeJSON(w, http.StatusOK, feedResponse{
		Success:  true,
		Listings: items,
		HasMore:  feedPage.HasMore,
	})
}

// SimilarListings handles GET /api/v1/listings/similar.
func (s *Server) SimilarListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	t := listing.SourceType(query.Get("type"))
	if !t.IsValid() {
		writeError(w, http.StatusBadRequest, codeInvalidType, "unknown listing type: "+query.Get("type"))
		return
	}

	page, ok := s.intParam(w, r, "page")
	if !ok {
		return
	}
	pageSize, ok := s.intParam(w, r, "pageSize")
	if !ok {
		return
	}

	records, err := s.feed.Similar(
		r.Context(), t,
		query.Get("category"), query.Get("college"), query.Get("exclude"),
		page, pageSize,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]listingItem, len(records))
	for i := range records {
		items[i] = recordToItem(records[i])
	}

	writeJSON(w, http.StatusOK, feedResponse{
		Success:  true,
		Listings: items,
		HasMore:  len(items) == pageSize && pageSize > 0,
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, reportToResponse(report))
}

// intParam parses an optional positive integer query parameter. A missing
// parameter yields 0 (let the domain default it); garbage is a client error.
func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Code:    code,
		Error:   message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// handleDomainError maps a domain error to an HTTP response. Anything
// unmatched is a 500 with a generic message; detail stays in the log.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err, err.Error()) {
			return
		}
	}
	s.logger.Error("Unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal server error")
}
