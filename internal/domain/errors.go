package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode has no catalog entry
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the catalog snapshot could not be loaded
	ErrCatalogUnavailable = errors.New("catalog snapshot unavailable")

	// ErrUnknownPillar is returned when a pillar identifier is absent from a weight map
	ErrUnknownPillar = errors.New("unknown pillar identifier")

	// ErrInvalidWeightProfile is returned when a finalized weight profile violates its invariants
	ErrInvalidWeightProfile = errors.New("invalid weight profile")
)
