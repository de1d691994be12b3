package models

// Rank is a named progression tier. Ranks are never stored — they are always
// derived from a user's current point total via CalculateRank.
type Rank struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
	Color     string `json:"color"`
}

// Ranks is the fixed ladder, ascending by threshold.
var Ranks = []Rank{
	{Name: "Novice Helper", MinPoints: 0, Color: "text-gray-600"},
	{Name: "Kind Soul", MinPoints: 100, Color: "text-green-600"},
	{Name: "Community Friend", MinPoints: 250, Color: "text-blue-600"},
	{Name: "Local Hero", MinPoints: 500, Color: "text-purple-600"},
	{Name: "Impact Maker", MinPoints: 1000, Color: "text-yellow-600"},
	{Name: "Legendary Altruist", MinPoints: 2500, Color: "text-red-600"},
}

// CalculateRank returns the highest tier whose threshold the given point
// total has reached. Points must be non-negative.
func CalculateRank(points int) Rank {
	current := Ranks[0]
	for _, r := range Ranks {
		if points >= r.MinPoints && r.MinPoints >= current.MinPoints {
			current = r
		}
	}
	return current
}
