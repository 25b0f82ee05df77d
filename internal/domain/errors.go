package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the catalog endpoint cannot be reached or answers non-2xx
	ErrCatalogUnavailable = errors.New("catalog request failed")

	// ErrCatalogMalformed is returned when the catalog body is not a JSON array of products
	ErrCatalogMalformed = errors.New("catalog response malformed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrGeneratorFailure is returned when the answer generator request fails
	ErrGeneratorFailure = errors.New("answer generator request failed")

	// ErrEmptyAnswer is returned when the answer generator replies with no text
	ErrEmptyAnswer = errors.New("answer generator returned no text")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
