// Package tables implements the per-entity-type table adapters. One
// parameterized Adapter covers all four listing tables; the per-type
// differences (searchable columns, active flag, price column, the
// accommodation heuristic) live in a declarative Spec so the query logic
// exists exactly once.
package tables

import (
	"fmt"

	"github.com/studx-cloud/listdex/internal/db"
	"github.com/studx-cloud/listdex/internal/domain"
	"github.com/studx-cloud/listdex/internal/domain/listing"
)

// Spec declares how one listing table maps onto the common record shape.
type Spec struct {
	Type          listing.SourceType
	Table         string
	SearchColumns []string

	// ActiveColumn is a boolean column where false means "still available"
	// (is_sold, is_rented). Empty means the type has no such flag and every
	// row is active.
	ActiveColumn string

	// PriceColumn is the source column mapped to price (rentals store it
	// as rental_price).
	PriceColumn string

	// SimilarColumn is the equality column used for similar-listing
	// lookups. Empty means the type does not support them.
	SimilarColumn string

	// ExpandAccommodation enables the accommodation-keyword heuristic:
	// queries mentioning rooms/hostels/pg return every row of the table.
	ExpandAccommodation bool
}

func specFor(t listing.SourceType) (Spec, bool) {
	switch t {
	case listing.TypeProduct:
		return Spec{
			Type:          listing.TypeProduct,
			Table:         "products",
			SearchColumns: []string{"title", "description", "category"},
			ActiveColumn:  "is_sold",
			PriceColumn:   "price",
			SimilarColumn: "category",
		}, true
	case listing.TypeNote:
		return Spec{
			Type:  listing.TypeNote,
			Table: "notes",
			SearchColumns: []string{
				"title", "description", "category",
				"subject", "course_subject", "academic_year",
			},
			PriceColumn:   "price",
			SimilarColumn: "category",
		}, true
	case listing.TypeRoom:
		return Spec{
			Type:                listing.TypeRoom,
			Table:               "rooms",
			SearchColumns:       []string{"title", "description", "category", "room_type"},
			PriceColumn:         "price",
			SimilarColumn:       "college",
			ExpandAccommodation: true,
		}, true
	case listing.TypeRental:
		return Spec{
			Type:          listing.TypeRental,
			Table:         "rentals",
			SearchColumns: []string{"title", "description", "category", "condition", "rental_terms"},
			ActiveColumn:  "is_rented",
			PriceColumn:   "rental_price",
		}, true
	}
	return Spec{}, false
}

// New creates an adapter for one source type.
func New(q db.Querier, t listing.SourceType) (*Adapter, error) {
	spec, ok := specFor(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSourceType, t)
	}
	return &Adapter{q: q, spec: spec}, nil
}

// All creates adapters for every known source type.
func All(q db.Querier) []*Adapter {
	types := listing.Types()
	adapters := make([]*Adapter, 0, len(types))
	for _, t := range types {
		a, err := New(q, t)
		if err != nil {
			// specFor covers listing.Types() exhaustively
			panic(err)
		}
		adapters = append(adapters, a)
	}
	return adapters
}
