// Package search orchestrates the federated listing search: fan-out to the
// table adapters, sponsorship classification, ranking, and pagination.
package search

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studx-cloud/listdex/internal/domain/listing"
	"github.com/studx-cloud/listdex/internal/domain/search/request"
	"github.com/studx-cloud/listdex/internal/domain/search/result"
	"github.com/studx-cloud/listdex/internal/domain/sponsorship"
	"github.com/studx-cloud/listdex/internal/logger"
	"github.com/studx-cloud/listdex/internal/metrics"
)

const defaultAdapterTimeout = 5 * time.Second

// Service handles federated search across the listing tables.
type Service struct {
	adapters       []Adapter
	sponsorships   SponsorshipLister
	adapterTimeout time.Duration
}

// New creates a search service.
func New(adapters []Adapter, sponsorships SponsorshipLister) *Service {
	return &Service{
		adapters:       adapters,
		sponsorships:   sponsorships,
		adapterTimeout: defaultAdapterTimeout,
	}
}

// WithAdapterTimeout overrides the per-adapter deadline.
func (s *Service) WithAdapterTimeout(d time.Duration) *Service {
	if d > 0 {
		s.adapterTimeout = d
	}
	return s
}

// Search runs the full pipeline for a validated request. Adapters for
// every in-scope source type run concurrently, alongside the sponsorship
// load which has no data dependency on them. A failing adapter degrades
// to an empty result set for its type; a failing sponsorship load
// degrades to "nothing is sponsored". Only the validated request itself
// can fail a search.
func (s *Service) Search(ctx context.Context, req *request.Request) (*result.Page, error) {
	log := logger.FromContext(ctx)

	selected := make([]Adapter, 0, len(s.adapters))
	for _, a := range s.adapters {
		if req.Scope().Includes(a.Type()) {
			selected = append(selected, a)
		}
	}

	var wg sync.WaitGroup

	// Sponsorship load runs alongside the adapter fan-out.
	var assignments []sponsorship.Assignment
	wg.Add(1)
	go func() {
		defer wg.Done()
		loaded, err := s.sponsorships.List(ctx)
		if err != nil {
			log.Warn("Sponsorship lookup failed, treating all results as regular", zap.Error(err))
			metrics.SponsorshipLookupFailuresTotal.Inc()
			return
		}
		assignments = loaded
	}()

	perAdapter := make([][]listing.Record, len(selected))
	for i, a := range selected {
		wg.Add(1)
		go func(i int, a Adapter) {
			defer wg.Done()
			perAdapter[i] = s.searchOne(ctx, a, req.Query())
		}(i, a)
	}

	wg.Wait()

	var candidates []listing.Record
	for _, records := range perAdapter {
		candidates = append(candidates, records...)
	}

	classified := classify(candidates, assignments)
	page := rank(classified, req.Offset(), req.PageSize())

	metrics.SearchResultsTotal.WithLabelValues("sponsored").Add(float64(page.Counts.Sponsored))
	metrics.SearchResultsTotal.WithLabelValues("regular").Add(float64(page.Counts.Regular))

	return page, nil
}

// searchOne queries a single adapter under its own deadline. Failure is
// isolated: it logs, bumps the failure counter, and yields no records.
func (s *Service) searchOne(ctx context.Context, a Adapter, keyword string) []listing.Record {
	ctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()

	records, err := a.Search(ctx, keyword)
	if err != nil {
		logger.FromContext(ctx).Warn("Table adapter failed, degrading to empty result",
			zap.String("source_type", string(a.Type())),
			zap.Error(err),
		)
		metrics.AdapterFailuresTotal.WithLabelValues(string(a.Type())).Inc()
		return nil
	}
	return records
}
