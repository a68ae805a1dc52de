package search

import (
	"context"

	"github.com/studx-cloud/listdex/internal/domain/listing"
	"github.com/studx-cloud/listdex/internal/domain/sponsorship"
)

// Adapter executes a keyword search against one listing table.
type Adapter interface {
	Type() listing.SourceType
	Search(ctx context.Context, keyword string) ([]listing.Record, error)
}

// SponsorshipLister loads all active sponsorship assignments.
type SponsorshipLister interface {
	List(ctx context.Context) ([]sponsorship.Assignment, error)
}
