package models

import "time"

// StoreEntry is one durable key-value row. Every persisted aggregate
// (current user, completion history, active catalog, per-location catalogs,
// leaderboard, zip code) serializes to JSON under a well-known key.
type StoreEntry struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     []byte    `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
