// Package request defines the validated search query shape.
package request

import (
	"fmt"
	"strings"

	"github.com/studx-cloud/listdex/internal/domain"
	"github.com/studx-cloud/listdex/internal/domain/listing"
)

// Search parameter limits.
const (
	MaxQueryLength  = 256
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Scope selects which listing tables a search fans out to.
type Scope string

// Known scopes. The plural forms match the public query parameter values.
const (
	ScopeAll      Scope = "all"
	ScopeProducts Scope = "products"
	ScopeNotes    Scope = "notes"
	ScopeRooms    Scope = "rooms"
	ScopeRentals  Scope = "rentals"
)

var scopeTypes = map[Scope]listing.SourceType{
	ScopeProducts: listing.TypeProduct,
	ScopeNotes:    listing.TypeNote,
	ScopeRooms:    listing.TypeRoom,
	ScopeRentals:  listing.TypeRental,
}

// ParseScope maps a type parameter to a Scope. Empty means all.
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return ScopeAll, nil
	}
	scope := Scope(strings.ToLower(strings.TrimSpace(s)))
	if scope == ScopeAll {
		return ScopeAll, nil
	}
	if _, ok := scopeTypes[scope]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSourceType, s)
	}
	return scope, nil
}

// Includes reports whether the scope covers the given source type.
func (s Scope) Includes(t listing.SourceType) bool {
	if s == ScopeAll {
		return true
	}
	return scopeTypes[s] == t
}

// Sizes bounds the page window. Zero fields fall back to the package
// defaults, so the zero value is usable.
type Sizes struct {
	Default int
	Max     int
}

func (s Sizes) normalize() Sizes {
	if s.Default <= 0 {
		s.Default = DefaultPageSize
	}
	if s.Max <= 0 {
		s.Max = MaxPageSize
	}
	return s
}

// Request is a validated search query.
type Request struct {
	query    string
	scope    Scope
	page     int
	pageSize int
}

// New validates and normalizes search parameters. The query is trimmed and
// must be non-empty; this is rejected before any I/O happens. Page defaults
// to 1, pageSize to sizes.Default and is clamped to sizes.Max.
func New(query, scopeParam string, page, pageSize int, sizes Sizes) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: search query is required", domain.ErrInvalidQuery)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}

	scope, err := ParseScope(scopeParam)
	if err != nil {
		return Request{}, err
	}

	sizes = sizes.normalize()
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = sizes.Default
	}
	if pageSize > sizes.Max {
		pageSize = sizes.Max
	}

	return Request{query: query, scope: scope, page: page, pageSize: pageSize}, nil
}

// Query returns the trimmed search keyword.
func (r *Request) Query() string { return r.query }

// Scope returns the requested table scope.
func (r *Request) Scope() Scope { return r.scope }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the page window size.
func (r *Request) PageSize() int { return r.pageSize }

// Offset returns the zero-based offset of the page window. Windowing is
// applied after global ordering, not per partition.
func (r *Request) Offset() int { return (r.page - 1) * r.pageSize }
