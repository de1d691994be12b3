package models

import "time"

// CompletedDeed records that a user finished a specific deed, with photo
// proof. Points are snapshotted from the deed at completion time so later
// point-policy changes never rewrite history. Append-only.
type CompletedDeed struct {
	ID          string    `json:"id"`
	DeedID      string    `json:"deed_id"`
	UserID      string    `json:"user_id"`
	PhotoURL    string    `json:"photo_url"`
	CompletedAt time.Time `json:"completed_at"`
	Points      int       `json:"points"`
}
