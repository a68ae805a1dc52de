// Package result defines the classified search output shape.
package result

import (
	"time"

	"github.com/studx-cloud/listdex/internal/domain/listing"
)

// Result is one listing record tagged with its sponsorship classification.
type Result struct {
	record     listing.Record
	sponsored  bool
	slot       int
	assignedAt time.Time
}

// Regular builds an unsponsored result.
func Regular(rec listing.Record) Result {
	return Result{record: rec}
}

// Sponsored builds a sponsored result carrying its slot and the assignment
// creation time (slot-collision tiebreaker).
func Sponsored(rec listing.Record, slot int, assignedAt time.Time) Result {
	return Result{record: rec, sponsored: true, slot: slot, assignedAt: assignedAt}
}

// Record returns the underlying listing.
func (r *Result) Record() listing.Record { return r.record }

// IsSponsored reports whether the listing holds a sponsorship assignment.
func (r *Result) IsSponsored() bool { return r.sponsored }

// Slot returns the sponsored slot; meaningful only when IsSponsored.
func (r *Result) Slot() int { return r.slot }

// AssignedAt returns the assignment creation time; zero when unsponsored.
func (r *Result) AssignedAt() time.Time { return r.assignedAt }

// Counts summarizes a classified result set before windowing.
type Counts struct {
	Sponsored int
	Regular   int
	Total     int
}

// Page is the ordered, windowed slice of a search plus its full counts.
type Page struct {
	Results []Result
	Counts  Counts
}
