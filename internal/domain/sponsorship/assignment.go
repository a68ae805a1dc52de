// Package sponsorship defines the assignment records that grant listings
// priority placement. Assignments are written by an administrative path
// outside this service; the search engine only ever reads them.
package sponsorship

import (
	"fmt"
	"time"

	"github.com/studx-cloud/listdex/internal/domain"
	"github.com/studx-cloud/listdex/internal/domain/listing"
)

// Assignment grants one listing a sponsored slot. Lower slots rank higher.
type Assignment struct {
	itemType  listing.SourceType
	itemID    string
	slot      int
	createdAt time.Time
}

// New validates and builds an Assignment. Slot must be positive.
func New(itemType listing.SourceType, itemID string, slot int, createdAt time.Time) (Assignment, error) {
	if !itemType.IsValid() {
		return Assignment{}, fmt.Errorf("%w: %q", domain.ErrInvalidSourceType, itemType)
	}
	if itemID == "" {
		return Assignment{}, fmt.Errorf("%w: sponsorship assignment has empty item id", domain.ErrMalformedRecord)
	}
	if slot <= 0 {
		return Assignment{}, fmt.Errorf("%w: sponsorship slot must be positive, got %d", domain.ErrMalformedRecord, slot)
	}
	return Assignment{itemType: itemType, itemID: itemID, slot: slot, createdAt: createdAt}, nil
}

// ItemType returns the referenced listing's source type.
func (a *Assignment) ItemType() listing.SourceType { return a.itemType }

// ItemID returns the referenced listing's id.
func (a *Assignment) ItemID() string { return a.itemID }

// Key returns the compound (type, id) the assignment references.
func (a *Assignment) Key() listing.Key {
	return listing.Key{Type: a.itemType, ID: a.itemID}
}

// Slot returns the priority rank among sponsored results.
func (a *Assignment) Slot() int { return a.slot }

// CreatedAt returns the assignment creation time, used only as a
// tiebreaker when two assignments collide on the same slot.
func (a *Assignment) CreatedAt() time.Time { return a.createdAt }
