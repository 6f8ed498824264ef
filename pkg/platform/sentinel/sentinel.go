package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Adapters return these (optionally
// wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: key or resource does not exist (cache miss)
// - ErrUnavailable: upstream temporarily refused, e.g. circuit open
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
