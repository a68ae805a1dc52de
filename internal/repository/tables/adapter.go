package tables

import (
	"context"
	"fmt"
	"strings"

	"github.com/studx-cloud/listdex/internal/db"
	"github.com/studx-cloud/listdex/internal/domain"
	"github.com/studx-cloud/listdex/internal/domain/listing"
)

// accommodationTerms are colloquial synonyms for room listings. A keyword
// containing any of them bypasses the room filter entirely: "hostel" and
// "pg" must match rooms that share no substring with the query.
var accommodationTerms = []string{"room", "rooms", "hostel", "hostels", "pg", "accommodation"}

func isAccommodationQuery(keyword string) bool {
	q := strings.ToLower(strings.TrimSpace(keyword))
	for _, term := range accommodationTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// Adapter executes keyword and status filters against one listing table
// and returns rows normalized into the common record shape.
type Adapter struct {
	q    db.Querier
	spec Spec
}

// Type returns the source type the adapter serves.
func (a *Adapter) Type() listing.SourceType { return a.spec.Type }

// SupportsSimilar reports whether the type has a similar-listing filter.
func (a *Adapter) SupportsSimilar() bool { return a.spec.SimilarColumn != "" }

// selectClause projects the per-type columns onto the normalized shape.
func (a *Adapter) selectClause() string {
	active := "FALSE AS inactive"
	if a.spec.ActiveColumn != "" {
		active = a.spec.ActiveColumn + " AS inactive"
	}
	return fmt.Sprintf(
		"SELECT id, title, description, category, college, location, %s AS price, %s, created_at FROM %s",
		a.spec.PriceColumn, active, a.spec.Table,
	)
}

func (a *Adapter) activeFilter() string {
	if a.spec.ActiveColumn == "" {
		return ""
	}
	return a.spec.ActiveColumn + " = FALSE"
}

// Search runs a case-insensitive substring match over the type's
// searchable columns, filtered to active rows, newest first. When the
// adapter serves rooms and the keyword is an accommodation query, the
// keyword filter is skipped and all rooms are returned.
func (a *Adapter) Search(ctx context.Context, keyword string) ([]listing.Record, error) {
	var (
		clauses []string
		args    []any
	)

	if !(a.spec.ExpandAccommodation && isAccommodationQuery(keyword)) {
		pattern := "%" + strings.TrimSpace(keyword) + "%"
		matches := make([]string, len(a.spec.SearchColumns))
		for i, col := range a.spec.SearchColumns {
			matches[i] = col + " ILIKE $1"
		}
		clauses = append(clauses, "("+strings.Join(matches, " OR ")+")")
		args = append(args, pattern)
	}
	if f := a.activeFilter(); f != "" {
		clauses = append(clauses, f)
	}

	query := a.selectClause()
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return a.selectRecords(ctx, query, args...)
}

// List returns all active rows of the table, newest first.
func (a *Adapter) List(ctx context.Context) ([]listing.Record, error) {
	query := a.selectClause()
	if f := a.activeFilter(); f != "" {
		query += " WHERE " + f
	}
	query += " ORDER BY created_at DESC"

	return a.selectRecords(ctx, query)
}

// Similar returns rows sharing the type's similar-listing filter value
// (category for products/notes, college for rooms), excluding one id,
// paginated at the store. A missing filter value or an unsupported type
// yields an empty result, not an error.
func (a *Adapter) Similar(ctx context.Context, category, college, excludeID string, offset, limit int) ([]listing.Record, error) {
	match := ""
	switch a.spec.SimilarColumn {
	case "category":
		match = category
	case "college":
		match = college
	default:
		return nil, nil
	}
	if match == "" {
		return nil, nil
	}

	query := fmt.Sprintf(
		"%s WHERE %s = $1 AND id <> $2 ORDER BY created_at DESC OFFSET $3 LIMIT $4",
		a.selectClause(), a.spec.SimilarColumn,
	)
	return a.selectRecords(ctx, query, match, excludeID, offset, limit)
}

func (a *Adapter) selectRecords(ctx context.Context, query string, args ...any) ([]listing.Record, error) {
	var rows []listingRow
	if err := a.q.Select(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", domain.ErrStoreUnavailable, a.spec.Table, err)
	}

	records := make([]listing.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord(a.spec.Type)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
