package models

// BadgeCategory groups badge definitions for display.
type BadgeCategory string

const (
	BadgeCategoryMilestone  BadgeCategory = "milestone"
	BadgeCategoryCreation   BadgeCategory = "creation"
	BadgeCategoryCategory   BadgeCategory = "category"
	BadgeCategoryDifficulty BadgeCategory = "difficulty"
	BadgeCategorySpecial    BadgeCategory = "special"
	BadgeCategoryRank       BadgeCategory = "rank"
)

// Badge is a static badge definition. User.Badges references these by ID;
// no operation currently awards them — the catalog is read-only display data.
type Badge struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Icon           string        `json:"icon"`
	PointsRequired int           `json:"points_required,omitempty"`
	DeedsRequired  int           `json:"deeds_required,omitempty"`
	Category       BadgeCategory `json:"category,omitempty"`
	Difficulty     Difficulty    `json:"difficulty,omitempty"`
	Tier           string        `json:"tier,omitempty"` // bronze, silver, gold, platinum
	Color          string        `json:"color"`
}

// BadgeCatalog is the fixed set of badges shown to users.
var BadgeCatalog = []Badge{
	{
		ID:            "first-deed",
		Name:          "First Steps",
		Description:   "Completed your first deed",
		Icon:          "footprints",
		DeedsRequired: 1,
		Category:      BadgeCategoryMilestone,
		Tier:          "bronze",
		Color:         "text-amber-700",
	},
	{
		ID:            "ten-deeds",
		Name:          "Helping Hands",
		Description:   "Completed ten deeds",
		Icon:          "hands",
		DeedsRequired: 10,
		Category:      BadgeCategoryMilestone,
		Tier:          "silver",
		Color:         "text-gray-500",
	},
	{
		ID:             "kind-soul",
		Name:           "Kind Soul",
		Description:    "Reached 100 points",
		Icon:           "heart",
		PointsRequired: 100,
		Category:       BadgeCategoryRank,
		Tier:           "bronze",
		Color:          "text-green-600",
	},
	{
		ID:             "local-hero",
		Name:           "Local Hero",
		Description:    "Reached 500 points",
		Icon:           "medal",
		PointsRequired: 500,
		Category:       BadgeCategoryRank,
		Tier:           "gold",
		Color:          "text-purple-600",
	},
	{
		ID:          "deed-author",
		Name:        "Community Architect",
		Description: "Created a deed for your neighborhood",
		Icon:        "hammer",
		Category:    BadgeCategoryCreation,
		Tier:        "bronze",
		Color:       "text-blue-600",
	},
}
