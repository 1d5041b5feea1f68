// Package sentinel holds infrastructure fact errors. Stores return these
// (optionally wrapped) and services translate them into domain errors.
//
//   - ErrNotFound: the record does not exist in the store
//   - ErrUnavailable: the backing store or cache cannot be reached
//   - ErrCacheMiss: the cache holds no entry for the key
//
// For caller mistakes use pkg/domain-errors directly.
package sentinel

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrCacheMiss   = errors.New("cache miss")
)
