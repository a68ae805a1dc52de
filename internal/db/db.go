// Package db defines the storage contracts consumed by the repositories.
// The listing tables and sponsorship table live in a relational store;
// a separate key-value store backs the sponsorship cache.
package db

import (
	"context"
	"time"
)

// Store is the relational store facade. Consumers depend on the narrow
// sub-interfaces, not on Store itself.
type Store interface {
	Querier
	Pinger
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Querier runs read-only queries scanning rows into dest. The engine never
// mutates listing data, so no write contract exists here.
type Querier interface {
	Select(ctx context.Context, dest any, query string, args ...any) error
}

// Cache is the key-value contract for the sponsorship cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close()
}
