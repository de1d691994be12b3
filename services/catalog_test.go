package services

import (
	"fmt"
	"testing"

	"comquest-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeedsCount(t *testing.T) {
	// seed "902" → 902 mod 5 = 2 → 7 deeds
	assert.Len(t, GenerateDeeds("90210"), 7)
	// seed 0 → the minimum
	assert.Len(t, GenerateDeeds("00000"), 5)

	for _, zip := range []string{"10001", "33109", "60601", "94105", "99999"} {
		count := len(GenerateDeeds(zip))
		assert.GreaterOrEqual(t, count, 5, "zip=%s", zip)
		assert.LessOrEqual(t, count, 9, "zip=%s", zip)
	}
}

func TestGenerateDeedsDeterministic(t *testing.T) {
	first := GenerateDeeds("90210")
	second := GenerateDeeds("90210")
	require.Equal(t, len(first), len(second))

	for i := range first {
		assert.Equal(t, first[i].Category, second[i].Category, "index=%d", i)
		assert.Equal(t, first[i].Title, second[i].Title, "index=%d", i)
		assert.Equal(t, first[i].Difficulty, second[i].Difficulty, "index=%d", i)
		assert.Equal(t, first[i].Points, second[i].Points, "index=%d", i)
		assert.Equal(t, first[i].EstimatedTime, second[i].EstimatedTime, "index=%d", i)
		assert.Equal(t, first[i].Description, second[i].Description, "index=%d", i)
		// IDs are fresh per call
		assert.NotEqual(t, first[i].ID, second[i].ID, "index=%d", i)
	}
}

func TestGenerateDeedsDifficultyByPosition(t *testing.T) {
	// seed 999 → 999 mod 5 = 4 → 9 deeds, covering all three tiers
	deeds := GenerateDeeds("99999")
	require.Len(t, deeds, 9)

	wantPoints := []int{10, 15, 20, 25, 30, 35, 50, 60, 70}
	for i, deed := range deeds {
		assert.Equal(t, wantPoints[i], deed.Points, "index=%d", i)
		switch {
		case i < 3:
			assert.Equal(t, models.DifficultyEasy, deed.Difficulty, "index=%d", i)
		case i < 6:
			assert.Equal(t, models.DifficultyMedium, deed.Difficulty, "index=%d", i)
		default:
			assert.Equal(t, models.DifficultyHard, deed.Difficulty, "index=%d", i)
		}
	}
}

func TestGenerateDeedsDefaults(t *testing.T) {
	for _, deed := range GenerateDeeds("12345") {
		assert.Equal(t, models.SystemCreator, deed.CreatedBy)
		assert.False(t, deed.Approved)
		assert.Equal(t, "Near 12345", deed.Location)
		assert.Contains(t, models.Categories, deed.Category)
		assert.Contains(t, deedTitles[deed.Category], deed.Title)
		assert.Contains(t, timeLabels[deed.Difficulty], deed.EstimatedTime)
		assert.NotEmpty(t, deed.Description)
		assert.NotEmpty(t, deed.ID)
	}
}

func TestGenerateDeedsCategoryRotation(t *testing.T) {
	deeds := GenerateDeeds("90210")
	seed := 902
	for i, deed := range deeds {
		want := models.Categories[(seed+i)%len(models.Categories)]
		assert.Equal(t, want, deed.Category, fmt.Sprintf("index=%d", i))
	}
}
