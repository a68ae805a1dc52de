package sponsorship

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/studx-cloud/listdex/internal/db"
	"github.com/studx-cloud/listdex/internal/domain/listing"
	domsponsor "github.com/studx-cloud/listdex/internal/domain/sponsorship"
)

const cacheKey = "listdex:sponsorships"

// store is the consumer interface for the assignment cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedLister caches the full assignment list in a key-value store with a
// TTL. Sponsorship data changes rarely and is read on every search, so a
// short TTL removes one round-trip per request. Cache failures fall
// through to the inner lister.
type CachedLister struct {
	inner      Lister
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// Compile-time check: CachedLister implements Lister.
var _ Lister = (*CachedLister)(nil)

// NewCached creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func NewCached(
	inner Lister,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedLister {
	return &CachedLister{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// List returns cached assignments or calls the inner lister and caches
// the result.
func (c *CachedLister) List(ctx context.Context) ([]domsponsor.Assignment, error) {
	if assignments, ok := c.getFromCache(ctx); ok {
		c.incCache("hit")
		return assignments, nil
	}
	c.incCache("miss")

	assignments, err := c.inner.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	c.putToCache(ctx, assignments)
	return assignments, nil
}

func (c *CachedLister) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheEntry is the wire shape of one cached assignment.
type cacheEntry struct {
	ItemType  string    `json:"item_type"`
	ItemID    string    `json:"item_id"`
	Slot      int       `json:"slot"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *CachedLister) getFromCache(ctx context.Context) ([]domsponsor.Assignment, bool) {
	data, err := c.store.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read sponsorship cache", zap.Error(err))
		}
		return nil, false
	}

	var entries []cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("Failed to decode sponsorship cache", zap.Error(err))
		return nil, false
	}

	assignments := make([]domsponsor.Assignment, 0, len(entries))
	for _, e := range entries {
		a, err := domsponsor.New(listing.SourceType(e.ItemType), e.ItemID, e.Slot, e.CreatedAt)
		if err != nil {
			c.logger.Warn("Dropping invalid cached assignment", zap.Error(err))
			continue
		}
		assignments = append(assignments, a)
	}
	return assignments, true
}

func (c *CachedLister) putToCache(ctx context.Context, assignments []domsponsor.Assignment) {
	entries := make([]cacheEntry, len(assignments))
	for i := range assignments {
		entries[i] = cacheEntry{
			ItemType:  string(assignments[i].ItemType()),
			ItemID:    assignments[i].ItemID(),
			Slot:      assignments[i].Slot(),
			CreatedAt: assignments[i].CreatedAt(),
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("Failed to encode sponsorship cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, cacheKey, data, c.ttl); err != nil {
		c.logger.Warn("Failed to write sponsorship cache", zap.Error(err))
	}
}
