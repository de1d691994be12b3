// Package storage provides the durable key-value store behind the
// progression service. Aggregates are serialized to JSON and written under
// well-known keys; a whole logical operation persists through a single
// SaveAll call so User, leaderboard and history never land half-written.
package storage

import "errors"

// ErrKeyNotFound is returned by Get for keys that were never written.
var ErrKeyNotFound = errors.New("storage: key not found")

// Well-known keys. Per-location catalogs use KeyDeedsByLocation + code.
const (
	KeyCurrentUser     = "current-user"
	KeyCompletedDeeds  = "completed-deeds"
	KeyCreatedDeeds    = "created-deeds"
	KeyZipCode         = "zip-code"
	KeyLeaderboard     = "leaderboard"
	KeyDeedsByLocation = "deeds-by-location:"
)

// LocationKey returns the storage key for one location's generated catalog.
func LocationKey(zipCode string) string {
	return KeyDeedsByLocation + zipCode
}

// Store is the durable key-value storage contract.
//
// SaveAll applies every entry atomically: values are upserted, nil values
// delete their key. Either the whole batch lands or none of it does.
type Store interface {
	Get(key string) ([]byte, error)
	SaveAll(entries map[string][]byte) error
}
