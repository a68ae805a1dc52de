package search

import (
	"sort"

	"github.com/studx-cloud/listdex/internal/domain/listing"
	"github.com/studx-cloud/listdex/internal/domain/search/result"
	"github.com/studx-cloud/listdex/internal/domain/sponsorship"
)

// classify marks each candidate record as sponsored or regular by probing
// a hash lookup keyed on the compound (type, id). Assignments referencing
// items outside the candidate set are inert. When two assignments
// reference the same item, the lower slot wins.
func classify(candidates []listing.Record, assignments []sponsorship.Assignment) []result.Result {
	lookup := make(map[listing.Key]sponsorship.Assignment, len(assignments))
	for _, a := range assignments {
		key := a.Key()
		if existing, ok := lookup[key]; ok && existing.Slot() <= a.Slot() {
			continue
		}
		lookup[key] = a
	}

	classified := make([]result.Result, 0, len(candidates))
	for _, rec := range candidates {
		if a, ok := lookup[rec.Key()]; ok {
			classified = append(classified, result.Sponsored(rec, a.Slot(), a.CreatedAt()))
		} else {
			classified = append(classified, result.Regular(rec))
		}
	}
	return classified
}

// rank produces the final total ordering and applies the page window.
// Sponsored results always precede regular ones; no regular record may
// outrank a sponsored one regardless of recency. Counts reflect the full
// ordering, not the window.
func rank(classified []result.Result, offset, limit int) *result.Page {
	var sponsored, regular []result.Result
	for _, r := range classified {
		if r.IsSponsored() {
			sponsored = append(sponsored, r)
		} else {
			regular = append(regular, r)
		}
	}

	// Slot ascending; slot collisions break on assignment recency. The
	// final (type, id) comparison makes the ordering a total order so
	// repeated searches over identical data paginate identically.
	sort.Slice(sponsored, func(i, j int) bool {
		a, b := &sponsored[i], &sponsored[j]
		if a.Slot() != b.Slot() {
			return a.Slot() < b.Slot()
		}
		if !a.AssignedAt().Equal(b.AssignedAt()) {
			return a.AssignedAt().After(b.AssignedAt())
		}
		return lessKey(a.Record().Key(), b.Record().Key())
	})

	sort.Slice(regular, func(i, j int) bool {
		a, b := &regular[i], &regular[j]
		if !a.Record().CreatedAt().Equal(b.Record().CreatedAt()) {
			return a.Record().CreatedAt().After(b.Record().CreatedAt())
		}
		return lessKey(a.Record().Key(), b.Record().Key())
	})

	ordered := make([]result.Result, 0, len(sponsored)+len(regular))
	ordered = append(ordered, sponsored...)
	ordered = append(ordered, regular...)

	counts := result.Counts{
		Sponsored: len(sponsored),
		Regular:   len(regular),
		Total:     len(ordered),
	}

	return &result.Page{
		Results: window(ordered, offset, limit),
		Counts:  counts,
	}
}

// window slices [offset, offset+limit) out of the globally ordered
// sequence. Pagination runs after ordering, so a large sponsored set can
// consume an entire page.
func window(ordered []result.Result, offset, limit int) []result.Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ordered) {
		return []result.Result{}
	}
	end := offset + limit
	if limit <= 0 || end > len(ordered) {
		end = len(ordered)
	}
	return ordered[offset:end]
}

func lessKey(a, b listing.Key) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.ID < b.ID
}
