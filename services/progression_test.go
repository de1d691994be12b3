package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"comquest-service/models"
	"comquest-service/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*ProgressionService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewProgressionService(store, zap.NewNop())
	require.NoError(t, svc.Load())
	return svc, store
}

func TestLoadSeedsLeaderboardOnce(t *testing.T) {
	svc, store := newTestService(t)
	board := svc.Leaderboard()
	require.Len(t, board, 10)
	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].Points, board[i].Points)
	}
	for _, entry := range board {
		assert.Equal(t, models.CalculateRank(entry.Points).Name, entry.Rank)
	}

	// a second service over the same store reuses the stored board
	again := NewProgressionService(store, zap.NewNop())
	require.NoError(t, again.Load())
	assert.Equal(t, board, again.Leaderboard())
}

func TestLoginStartsFresh(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Login("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Zero(t, user.Points)
	assert.Zero(t, user.CompletedDeeds)
	assert.Zero(t, user.CreatedDeeds)
	assert.Equal(t, "Novice Helper", user.Rank)

	matches := 0
	for _, entry := range svc.Leaderboard() {
		if entry.ID == user.ID {
			matches++
		}
	}
	assert.Equal(t, 1, matches, "exactly one leaderboard entry for the new user")
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t)
	for _, username := range []string{"", "ab", "  a  "} {
		_, err := svc.Login(username)
		assert.ErrorIs(t, err, ErrValidation, "username=%q", username)
	}
	_, ok := svc.CurrentUser()
	assert.False(t, ok)
}

func TestSetLocationReusesCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.SetLocation("90210")
	require.NoError(t, err)
	require.Len(t, first, 7)

	other, err := svc.SetLocation("10001")
	require.NoError(t, err)
	assert.NotEqual(t, first[0].ID, other[0].ID)

	// switching back never regenerates — same IDs, no merging
	back, err := svc.SetLocation("90210")
	require.NoError(t, err)
	require.Equal(t, len(first), len(back))
	for i := range first {
		assert.Equal(t, first[i].ID, back[i].ID)
	}

	zip, ok := svc.ZipCode()
	assert.True(t, ok)
	assert.Equal(t, "90210", zip)
}

func TestCreateDeedRequiresUser(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateDeed(models.Deed{Title: "Shovel snow", Difficulty: models.DifficultyEasy})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestCreateDeed(t *testing.T) {
	svc, _ := newTestService(t)
	user, err := svc.Login("alice")
	require.NoError(t, err)
	_, err = svc.SetLocation("90210")
	require.NoError(t, err)
	before := svc.Deeds()

	deed, err := svc.CreateDeed(models.Deed{
		Title:       "Shovel snow for neighbors",
		Description: "Clear the sidewalks on Elm Street after the storm.",
		Difficulty:  models.DifficultyEasy,
		Category:    "community",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(deed.ID, "shovel-snow-for-neighbors-"))
	assert.Equal(t, user.ID, deed.CreatedBy)
	assert.Equal(t, 10, deed.Points)
	assert.False(t, deed.Approved)
	assert.Equal(t, "Near 90210", deed.Location)

	deeds := svc.Deeds()
	require.Len(t, deeds, len(before)+1)
	assert.Equal(t, deed.ID, deeds[0].ID, "new deed is prepended")

	// only the created count moves — never points or rank
	updated, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, 1, updated.CreatedDeeds)
	assert.Zero(t, updated.Points)
	assert.Equal(t, user.Rank, updated.Rank)
}

func TestCreateDeedValidation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login("alice")
	require.NoError(t, err)

	_, err = svc.CreateDeed(models.Deed{Difficulty: models.DifficultyEasy})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateDeed(models.Deed{Title: "Ok title", Difficulty: "impossible"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompleteDeed(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login("alice")
	require.NoError(t, err)
	deeds, err := svc.SetLocation("90210")
	require.NoError(t, err)
	deed := deeds[1] // easy slot #2, 15 points

	completion, user, err := svc.CompleteDeed(deed.ID, "data:image/png;base64,proof")
	require.NoError(t, err)
	assert.Equal(t, deed.ID, completion.DeedID)
	assert.Equal(t, user.ID, completion.UserID)
	assert.Equal(t, 15, completion.Points)
	assert.Equal(t, "data:image/png;base64,proof", completion.PhotoURL)

	assert.Equal(t, 15, user.Points)
	assert.Equal(t, 1, user.CompletedDeeds)
	assert.Equal(t, models.CalculateRank(15).Name, user.Rank)

	history := svc.CompletedDeeds()
	require.Len(t, history, 1)

	var entry *models.LeaderboardEntry
	board := svc.Leaderboard()
	for i := range board {
		if board[i].ID == user.ID {
			entry = &board[i]
			break
		}
	}
	require.NotNil(t, entry)
	assert.Equal(t, 15, entry.Points)
	assert.Equal(t, 1, entry.CompletedDeeds)
	assert.Equal(t, user.Rank, entry.Rank)
}

func TestCompleteDeedErrors(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.CompleteDeed("whatever", "photo")
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.Login("alice")
	require.NoError(t, err)
	_, _, err = svc.CompleteDeed("not-in-catalog", "photo")
	assert.ErrorIs(t, err, ErrNotFound)

	// failed operations leave state untouched
	user, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Zero(t, user.Points)
	assert.Empty(t, svc.CompletedDeeds())
}

func TestCompleteDeedTwiceAccruesTwice(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login("alice")
	require.NoError(t, err)
	deeds, err := svc.SetLocation("90210")
	require.NoError(t, err)
	deed := deeds[0]

	_, _, err = svc.CompleteDeed(deed.ID, "photo-1")
	require.NoError(t, err)
	_, user, err := svc.CompleteDeed(deed.ID, "photo-2")
	require.NoError(t, err)

	assert.Equal(t, deed.Points*2, user.Points)
	assert.Equal(t, 2, user.CompletedDeeds)
	assert.Len(t, svc.CompletedDeeds(), 2)
}

func TestRankClimbsWithPoints(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login("alice")
	require.NoError(t, err)
	deeds, err := svc.SetLocation("99999") // 9 deeds, up to 70 points each
	require.NoError(t, err)

	var user models.User
	for i := 0; i < 4; i++ { // 50+60+70 from hard slots pushes past 100
		_, user, err = svc.CompleteDeed(deeds[8].ID, "photo")
		require.NoError(t, err)
		assert.Equal(t, models.CalculateRank(user.Points).Name, user.Rank)
	}
	assert.Greater(t, user.Points, 100)
	assert.NotEqual(t, "Novice Helper", user.Rank)
}

func TestLogoutKeepsHistory(t *testing.T) {
	svc, _ := newTestService(t)
	user, err := svc.Login("alice")
	require.NoError(t, err)
	deeds, err := svc.SetLocation("90210")
	require.NoError(t, err)
	_, _, err = svc.CompleteDeed(deeds[0].ID, "photo")
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	_, ok := svc.CurrentUser()
	assert.False(t, ok)
	assert.Len(t, svc.CompletedDeeds(), 1, "history survives logout")

	found := false
	for _, entry := range svc.Leaderboard() {
		if entry.ID == user.ID {
			found = true
		}
	}
	assert.True(t, found, "leaderboard entry survives logout")

	// a fresh login is unrelated to the previous session
	bob, err := svc.Login("bob")
	require.NoError(t, err)
	assert.NotEqual(t, user.ID, bob.ID)
	assert.Zero(t, bob.Points)
}

func TestSaveFailureRollsBack(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Login("alice")
	require.NoError(t, err)
	deeds, err := svc.SetLocation("90210")
	require.NoError(t, err)

	store.FailNextSave = errors.New("quota exceeded")
	_, _, err = svc.CompleteDeed(deeds[0].ID, "photo")
	require.Error(t, err)

	// in-memory state never diverged from storage
	user, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Zero(t, user.Points)
	assert.Empty(t, svc.CompletedDeeds())

	// the same operation succeeds once storage recovers
	_, user, err = svc.CompleteDeed(deeds[0].ID, "photo")
	require.NoError(t, err)
	assert.Equal(t, deeds[0].Points, user.Points)
}

func TestRehydrateRoundTrip(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Login("alice")
	require.NoError(t, err)
	deeds, err := svc.SetLocation("90210")
	require.NoError(t, err)
	_, _, err = svc.CompleteDeed(deeds[2].ID, "data:image/png;base64,proof")
	require.NoError(t, err)

	fresh := NewProgressionService(store, zap.NewNop())
	require.NoError(t, fresh.Load())

	assertJSONEqual := func(a, b any) {
		t.Helper()
		wantJSON, err := json.Marshal(a)
		require.NoError(t, err)
		gotJSON, err := json.Marshal(b)
		require.NoError(t, err)
		assert.Equal(t, string(wantJSON), string(gotJSON))
	}

	wantUser, ok := svc.CurrentUser()
	require.True(t, ok)
	gotUser, ok := fresh.CurrentUser()
	require.True(t, ok)
	assertJSONEqual(wantUser, gotUser)
	assertJSONEqual(svc.Deeds(), fresh.Deeds())
	assertJSONEqual(svc.CompletedDeeds(), fresh.CompletedDeeds())
	assertJSONEqual(svc.Leaderboard(), fresh.Leaderboard())

	zip, ok := fresh.ZipCode()
	assert.True(t, ok)
	assert.Equal(t, "90210", zip)
}

func TestSnapshotPersistsFullState(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Login("alice")
	require.NoError(t, err)
	_, err = svc.SetLocation("90210")
	require.NoError(t, err)
	require.NoError(t, svc.Snapshot())

	for _, key := range []string{
		storage.KeyCurrentUser,
		storage.KeyCreatedDeeds,
		storage.KeyZipCode,
		storage.KeyLeaderboard,
	} {
		_, err := store.Get(key)
		assert.NoError(t, err, "key=%s", key)
	}
}
