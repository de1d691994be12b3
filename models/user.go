package models

// User is the current session's identity plus its progression snapshot.
// Rank is denormalized for convenience but must always equal
// CalculateRank(Points).Name — every operation that touches Points is
// responsible for recomputing it.
type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Points         int      `json:"points"`
	CompletedDeeds int      `json:"completed_deeds"`
	CreatedDeeds   int      `json:"created_deeds"`
	Rank           string   `json:"rank"`
	Badges         []string `json:"badges,omitempty"` // schema compat; no operation awards badges yet
}

// LeaderboardEntry is a projection of a user's progression kept in the
// leaderboard collection. The User record is the source of truth; entries
// are only ever rewritten by the same operation that updated the user.
type LeaderboardEntry struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Points         int    `json:"points"`
	CompletedDeeds int    `json:"completed_deeds"`
	CreatedDeeds   int    `json:"created_deeds"`
	Rank           string `json:"rank"`
}
