package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"comquest-service/models"

	"github.com/google/uuid"
)

var deedTitles = map[string][]string{
	"environment": {
		"Clean up local park",
		"Plant a tree",
		"Collect recyclables",
		"Create a community garden",
		"Clean up a waterway",
	},
	"community": {
		"Help at food bank",
		"Visit a senior center",
		"Paint a community mural",
		"Organize a block party",
		"Repair playground equipment",
	},
	"social": {
		"Write letters to soldiers",
		"Donate to a shelter",
		"Host a fundraiser",
		"Make care packages",
		"Help at a soup kitchen",
	},
	"animal welfare": {
		"Walk shelter dogs",
		"Create bird feeders",
		"Build an animal shelter",
		"Volunteer at animal rescue",
		"Create a wildlife habitat",
	},
	"education": {
		"Tutor a student",
		"Donate books",
		"Organize a workshop",
		"Mentor a child",
		"Create educational materials",
	},
}

var descriptionOpeners = map[string]string{
	"environment":    "Help protect our planet by ",
	"community":      "Make our community stronger by ",
	"social":         "Create meaningful connections by ",
	"animal welfare": "Support our animal friends by ",
	"education":      "Empower through knowledge by ",
}

var descriptionActions = map[string][]string{
	"environment": {
		"removing litter and debris",
		"planting native species",
		"organizing a recycling drive",
		"creating sustainable spaces",
		"protecting natural resources",
	},
	"community": {
		"supporting local initiatives",
		"bringing people together",
		"improving shared spaces",
		"helping neighbors in need",
		"strengthening community bonds",
	},
	"social": {
		"supporting vulnerable populations",
		"spreading kindness and compassion",
		"creating valuable resources",
		"fostering human connections",
		"addressing social inequality",
	},
	"animal welfare": {
		"improving animal lives",
		"creating safe animal habitats",
		"supporting animal care facilities",
		"advocating for animal rights",
		"protecting endangered species",
	},
	"education": {
		"sharing knowledge and skills",
		"supporting educational access",
		"encouraging lifelong learning",
		"developing educational resources",
		"inspiring future generations",
	},
}

var impactSentences = []string{
	"This will make a real difference in our community!",
	"Your help will be greatly appreciated by everyone.",
	"Even small actions can create big positive changes.",
	"Be the change you want to see in the world!",
	"This is a perfect opportunity to use your skills for good.",
}

var timeLabels = map[models.Difficulty][]string{
	models.DifficultyEasy:   {"15 min", "30 min", "45 min"},
	models.DifficultyMedium: {"1 hour", "1.5 hours", "2 hours"},
	models.DifficultyHard:   {"2.5 hours", "3 hours", "4 hours"},
}

// catalogSeed derives the generator seed from the first three digits of a
// location code. Codes are validated upstream; anything unparsable seeds 0.
func catalogSeed(zipCode string) int {
	prefix := zipCode
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	seed, _ := strconv.Atoi(prefix)
	return seed
}

// deedParamsAt returns the difficulty and point value for the deed at
// position i in a generated catalog. The first three slots are easy, the
// next three medium, the rest hard.
func deedParamsAt(i int) (models.Difficulty, int) {
	switch {
	case i < 3:
		return models.DifficultyEasy, 10 + i*5
	case i < 6:
		return models.DifficultyMedium, 25 + (i-3)*5
	default:
		return models.DifficultyHard, 50 + (i-6)*10
	}
}

// GenerateDeeds fabricates the deed catalog for a location code. Everything
// but the deed IDs and timestamps is reproducible from (zipCode, index):
// the estimated-time label and description wording draw from a PRNG seeded
// per (zipCode, index) rather than global randomness.
func GenerateDeeds(zipCode string) []models.Deed {
	seed := catalogSeed(zipCode)
	count := seed%5 + 5 // 5-9 deeds
	now := time.Now()

	deeds := make([]models.Deed, 0, count)
	for i := 0; i < count; i++ {
		rng := rand.New(rand.NewSource(int64(seed)*31 + int64(i)))

		category := models.Categories[(seed+i)%len(models.Categories)]
		titles := deedTitles[category]
		title := titles[(seed+i)%len(titles)]
		difficulty, points := deedParamsAt(i)

		labels := timeLabels[difficulty]
		estimatedTime := labels[rng.Intn(len(labels))]

		deeds = append(deeds, models.Deed{
			ID:            uuid.NewString(),
			Title:         title,
			Description:   generateDescription(category, rng),
			Location:      fmt.Sprintf("Near %s", zipCode),
			Difficulty:    difficulty,
			Points:        points,
			Category:      category,
			EstimatedTime: estimatedTime,
			CreatedBy:     models.SystemCreator,
			CreatedAt:     now,
			Approved:      false,
		})
	}
	return deeds
}

func generateDescription(category string, rng *rand.Rand) string {
	opener, ok := descriptionOpeners[category]
	if !ok {
		opener = "Help make a difference by "
	}
	actions, ok := descriptionActions[category]
	var action string
	if ok {
		action = actions[rng.Intn(len(actions))]
	} else {
		action = "doing good in your community"
	}
	impact := impactSentences[rng.Intn(len(impactSentences))]
	return fmt.Sprintf("%s%s. %s", opener, strings.ToLower(action), impact)
}
