package models

import "time"

// Difficulty of a deed. The difficulty→points mapping is a catalog policy,
// not stored per tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// SystemCreator marks catalog deeds generated by the service itself.
const SystemCreator = "System"

// Categories is the fixed category set used by the catalog generator.
// User-created deeds may carry free-text categories beyond this list.
var Categories = []string{
	"environment",
	"community",
	"social",
	"animal welfare",
	"education",
}

// Deed is a task a user can complete for points. Immutable once created,
// never deleted.
type Deed struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	Difficulty    Difficulty `json:"difficulty"`
	Points        int        `json:"points"`
	Category      string     `json:"category"`
	EstimatedTime string     `json:"estimated_time"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	Approved      bool       `json:"approved"` // always false at creation; no workflow flips it yet
}
