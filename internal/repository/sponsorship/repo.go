// Package sponsorship reads the sponsorship-assignment table. Assignments
// are created and removed by an administrative path elsewhere; this
// repository never writes.
package sponsorship

import (
	"context"
	"fmt"
	"time"

	"github.com/studx-cloud/listdex/internal/db"
	"github.com/studx-cloud/listdex/internal/domain"
	"github.com/studx-cloud/listdex/internal/domain/listing"
	domsponsor "github.com/studx-cloud/listdex/internal/domain/sponsorship"
)

// Lister is the consumer contract for loading active assignments.
type Lister interface {
	List(ctx context.Context) ([]domsponsor.Assignment, error)
}

// Compile-time check: Repo implements Lister.
var _ Lister = (*Repo)(nil)

// Repo reads assignments from the sponsorship_sequences table.
type Repo struct {
	q db.Querier
}

// New creates a sponsorship repository.
func New(q db.Querier) *Repo {
	return &Repo{q: q}
}

type assignmentRow struct {
	ItemID    string    `db:"item_id"`
	ItemType  string    `db:"item_type"`
	Slot      int       `db:"slot"`
	CreatedAt time.Time `db:"created_at"`
}

// List loads all active assignments, lowest slot first. Rows that violate
// the assignment contract (unknown type, non-positive slot) are skipped:
// one bad administrative row must not disable sponsorship entirely.
func (r *Repo) List(ctx context.Context) ([]domsponsor.Assignment, error) {
	const query = `SELECT item_id, item_type, slot, created_at FROM sponsorship_sequences ORDER BY slot ASC`

	var rows []assignmentRow
	if err := r.q.Select(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSponsorshipUnavailable, err)
	}

	assignments := make([]domsponsor.Assignment, 0, len(rows))
	for _, row := range rows {
		a, err := domsponsor.New(listing.SourceType(row.ItemType), row.ItemID, row.Slot, row.CreatedAt)
		if err != nil {
			continue
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}
