package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrListingNotFound indicates the requested listing does not exist.
	ErrListingNotFound = errors.New("listing not found")

	// ErrInvalidListing indicates caller-supplied listing fields violate a
	// required constraint. Raised before any store write.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrNotOwner indicates the acting user does not own the listing they are
	// trying to mutate.
	ErrNotOwner = errors.New("not the listing owner")
)
