package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and gateways return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: row or cache entry does not exist
//   - ErrAlreadyUsed: a uniqueness guard rejected the write (membership link,
//     pending moderation case)
//   - ErrConflict: the write lost a race it cannot recover from
//   - ErrUnavailable: a backing service is temporarily unreachable
//
// For validation errors, use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
