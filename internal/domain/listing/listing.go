// Package listing defines the normalized, entity-agnostic listing record
// shared by every marketplace table.
package listing

import (
	"fmt"
	"time"

	"github.com/studx-cloud/listdex/internal/domain"
)

// SourceType identifies which marketplace table a record came from.
type SourceType string

// Known source types.
const (
	TypeProduct SourceType = "product"
	TypeNote    SourceType = "note"
	TypeRoom    SourceType = "room"
	TypeRental  SourceType = "rental"
)

// Types returns all known source types in canonical order.
func Types() []SourceType {
	return []SourceType{TypeProduct, TypeNote, TypeRoom, TypeRental}
}

// IsValid reports whether t is a known source type.
func (t SourceType) IsValid() bool {
	switch t {
	case TypeProduct, TypeNote, TypeRoom, TypeRental:
		return true
	}
	return false
}

// Key is the compound identifier of a record. IDs are unique only within
// their source table, so the (type, id) pair is what the sponsorship
// resolver joins against.
type Key struct {
	Type SourceType
	ID   string
}

// Attrs holds the optional, type-mapped attributes of a record.
// Price is nil when the source row has no price, which is a distinct
// state from a zero price.
type Attrs struct {
	Title       string
	Description string
	Category    string
	Price       *float64
	College     string
	Location    string
	IsActive    bool
}

// Record is a normalized listing.
type Record struct {
	sourceType  SourceType
	id          string
	title       string
	description string
	category    string
	price       *float64
	college     string
	location    string
	isActive    bool
	createdAt   time.Time
}

// New validates and builds a Record. A missing id or zero createdAt is a
// data contract violation: createdAt drives ordering downstream and must
// never be silently defaulted.
func New(t SourceType, id string, createdAt time.Time, attrs Attrs) (Record, error) {
	if !t.IsValid() {
		return Record{}, fmt.Errorf("%w: %q", domain.ErrInvalidSourceType, t)
	}
	if id == "" {
		return Record{}, fmt.Errorf("%w: empty id for type %s", domain.ErrMalformedRecord, t)
	}
	if createdAt.IsZero() {
		return Record{}, fmt.Errorf("%w: %s/%s has no created_at", domain.ErrMalformedRecord, t, id)
	}
	return Record{
		sourceType:  t,
		id:          id,
		title:       attrs.Title,
		description: attrs.Description,
		category:    attrs.Category,
		price:       attrs.Price,
		college:     attrs.College,
		location:    attrs.Location,
		isActive:    attrs.IsActive,
		createdAt:   createdAt,
	}, nil
}

// SourceType returns the originating table variant.
func (r Record) SourceType() SourceType { return r.sourceType }

// ID returns the identifier, unique within the source type.
func (r Record) ID() string { return r.id }

// Key returns the compound (type, id) identifier.
func (r Record) Key() Key { return Key{Type: r.sourceType, ID: r.id} }

// Title returns the listing title.
func (r Record) Title() string { return r.title }

// Description returns the listing description.
func (r Record) Description() string { return r.description }

// Category returns the listing category.
func (r Record) Category() string { return r.category }

// Price returns the listing price, nil when the source row has none.
func (r Record) Price() *float64 { return r.price }

// College returns the associated college, if any.
func (r Record) College() string { return r.college }

// Location returns the listing location, if any.
func (r Record) Location() string { return r.location }

// IsActive reports whether the listing is still available
// (not sold for products, not rented for rentals).
func (r Record) IsActive() bool { return r.isActive }

// CreatedAt returns the creation timestamp used for recency ordering.
func (r Record) CreatedAt() time.Time { return r.createdAt }
