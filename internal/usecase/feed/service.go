// Package feed serves the unfiltered browse feed and similar-listing
// lookups: a cross-table merge by recency without sponsorship ranking.
package feed

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studx-cloud/listdex/internal/domain/listing"
	"github.com/studx-cloud/listdex/internal/logger"
	"github.com/studx-cloud/listdex/internal/metrics"
)

// Pagination defaults for the browse feed.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

const defaultAdapterTimeout = 5 * time.Second

// Page is one window of the merged browse feed.
type Page struct {
	Listings []listing.Record
	HasMore  bool
}

// Service merges listings across tables by recency.
type Service struct {
	adapters       []Adapter
	defaultSize    int
	maxSize        int
	adapterTimeout time.Duration
}

// New creates a feed service over the given adapters. The browse feed
// covers whatever adapters are wired in; rentals are deliberately left
// out by the composition root.
func New(adapters []Adapter) *Service {
	return &Service{
		adapters:       adapters,
		defaultSize:    DefaultPageSize,
		maxSize:        MaxPageSize,
		adapterTimeout: defaultAdapterTimeout,
	}
}

// WithPagination overrides the default and maximum page sizes.
func (s *Service) WithPagination(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultSize = defaultSize
	}
	if maxSize > 0 {
		s.maxSize = maxSize
	}
	return s
}

// WithAdapterTimeout overrides the per-adapter deadline.
func (s *Service) WithAdapterTimeout(d time.Duration) *Service {
	if d > 0 {
		s.adapterTimeout = d
	}
	return s
}

func (s *Service) clampPaging(page, pageSize int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultSize
	}
	if pageSize > s.maxSize {
		pageSize = s.maxSize
	}
	return (page - 1) * pageSize, pageSize
}

// List fetches all tables concurrently, merges by created_at descending,
// and returns one page plus whether more follow. A failing table degrades
// to an empty contribution.
func (s *Service) List(ctx context.Context, page, pageSize int) (*Page, error) {
	offset, limit := s.clampPaging(page, pageSize)

	perAdapter := make([][]listing.Record, len(s.adapters))
	var wg sync.WaitGroup
	for i, a := range s.adapters {
		wg.Add(1)
		go func(i int, a Adapter) {
			defer wg.Done()
			tctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
			defer cancel()

			records, err := a.List(tctx)
			if err != nil {
				logger.FromContext(ctx).Warn("Feed adapter failed, degrading to empty result",
					zap.String("source_type", string(a.Type())),
					zap.Error(err),
				)
				metrics.AdapterFailuresTotal.WithLabelValues(string(a.Type())).Inc()
				return
			}
			perAdapter[i] = records
		}(i, a)
	}
	wg.Wait()

	var merged []listing.Record
	for _, records := range perAdapter {
		merged = append(merged, records...)
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := &merged[i], &merged[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().After(b.CreatedAt())
		}
		if a.SourceType() != b.SourceType() {
			return a.SourceType() < b.SourceType()
		}
		return a.ID() < b.ID()
	})

	if offset >= len(merged) {
		return &Page{Listings: []listing.Record{}}, nil
	}
	end := offset + limit
	if end > len(merged) {
		end = len(merged)
	}

	return &Page{
		Listings: merged[offset:end],
		HasMore:  end < len(merged),
	}, nil
}

// Similar returns listings related to one item: same category for
// products and notes, same college for rooms. Types without a similarity
// filter, or a missing filter value, yield an empty page.
func (s *Service) Similar(
	ctx context.Context, t listing.SourceType,
	category, college, excludeID string,
	page, pageSize int,
) ([]listing.Record, error) {
	offset, limit := s.clampPaging(page, pageSize)

	for _, a := range s.adapters {
		if a.Type() != t {
			continue
		}
		tctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
		defer cancel()

		records, err := a.Similar(tctx, category, college, excludeID, offset, limit)
		if err != nil {
			logger.FromContext(ctx).Warn("Similar lookup failed, degrading to empty result",
				zap.String("source_type", string(t)),
				zap.Error(err),
			)
			metrics.AdapterFailuresTotal.WithLabelValues(string(t)).Inc()
			return []listing.Record{}, nil
		}
		if records == nil {
			records = []listing.Record{}
		}
		return records, nil
	}

	return []listing.Record{}, nil
}
