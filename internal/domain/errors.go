package domain

import "errors"

var (
	// ErrInvalidQuery signals a missing or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidSourceType signals an unknown listing source type.
	ErrInvalidSourceType = errors.New("invalid source type")
	// ErrMalformedRecord signals a listing row that violates the data contract.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrSponsorshipUnavailable signals that the sponsorship store could not be read.
	ErrSponsorshipUnavailable = errors.New("sponsorship data unavailable")
	// ErrStoreUnavailable signals that a listing table could not be queried.
	ErrStoreUnavailable = errors.New("listing store unavailable")
)
