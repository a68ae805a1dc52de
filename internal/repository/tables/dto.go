package tables

import (
	"database/sql"
	"time"

	"github.com/studx-cloud/listdex/internal/domain/listing"
)

// listingRow is the normalized projection every table query scans into.
// The select clause aliases per-type columns (rental_price, is_sold,
// is_rented) onto this shape.
type listingRow struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Description sql.NullString  `db:"description"`
	Category    sql.NullString  `db:"category"`
	College     sql.NullString  `db:"college"`
	Location    sql.NullString  `db:"location"`
	Price       sql.NullFloat64 `db:"price"`
	Inactive    sql.NullBool    `db:"inactive"`
	CreatedAt   time.Time       `db:"created_at"`
}

// toRecord maps a row onto the domain record. It is pure: validation
// failures (empty id, zero created_at) surface as errors rather than
// being defaulted, since created_at drives ordering downstream.
func (r listingRow) toRecord(t listing.SourceType) (listing.Record, error) {
	var price *float64
	if r.Price.Valid {
		v := r.Price.Float64
		price = &v
	}
	return listing.New(t, r.ID, r.CreatedAt, listing.Attrs{
		Title:       r.Title,
		Description: r.Description.String,
		Category:    r.Category.String,
		College:     r.College.String,
		Location:    r.Location.String,
		Price:       price,
		IsActive:    !r.Inactive.Bool,
	})
}
