package feed

import (
	"context"

	"github.com/studx-cloud/listdex/internal/domain/listing"
)

// Adapter reads one listing table for the browse and similar feeds.
type Adapter interface {
	Type() listing.SourceType
	List(ctx context.Context) ([]listing.Record, error)
	Similar(ctx context.Context, category, college, excludeID string, offset, limit int) ([]listing.Record, error)
}
