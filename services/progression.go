package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"comquest-service/models"
	"comquest-service/storage"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Points a user-authored deed is worth when the form doesn't set them,
// keyed by difficulty. Mirrors the base values of the generated catalog.
var deedBasePoints = map[models.Difficulty]int{
	models.DifficultyEasy:   10,
	models.DifficultyMedium: 25,
	models.DifficultyHard:   50,
}

// ProgressionService owns every mutable aggregate of the tracker: the
// current user, the active deed catalog, the completion history and the
// leaderboard. Operations mutate them in a coordinated way and end in a
// single atomic write to durable storage — the write happens before the
// in-memory commit, so a storage failure leaves the service unchanged.
type ProgressionService struct {
	mu    sync.Mutex
	store storage.Store
	log   *zap.Logger

	user        *models.User
	deeds       []models.Deed
	deedsByZip  map[string][]models.Deed
	completed   []models.CompletedDeed
	leaderboard []models.LeaderboardEntry
	zipCode     string
}

func NewProgressionService(store storage.Store, log *zap.Logger) *ProgressionService {
	return &ProgressionService{
		store:      store,
		log:        log,
		deedsByZip: make(map[string][]models.Deed),
	}
}

// Load rehydrates every aggregate from storage. Ranks are recomputed from
// points on the way in so a stale stored rank can never survive a restart.
// When no leaderboard was ever stored, a mock one is seeded and persisted.
func (s *ProgressionService) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user models.User
	found, err := s.getJSON(storage.KeyCurrentUser, &user)
	if err != nil {
		return err
	}
	if found {
		user.Rank = models.CalculateRank(user.Points).Name
		s.user = &user
	}

	var completed []models.CompletedDeed
	if _, err := s.getJSON(storage.KeyCompletedDeeds, &completed); err != nil {
		return err
	}
	s.completed = completed

	var zipCode string
	if _, err := s.getJSON(storage.KeyZipCode, &zipCode); err != nil {
		return err
	}
	s.zipCode = zipCode

	var deeds []models.Deed
	if zipCode != "" {
		found, err := s.getJSON(storage.LocationKey(zipCode), &deeds)
		if err != nil {
			return err
		}
		if found {
			s.deedsByZip[zipCode] = deeds
		}
	}
	if deeds == nil {
		if _, err := s.getJSON(storage.KeyCreatedDeeds, &deeds); err != nil {
			return err
		}
	}
	s.deeds = deeds

	var board []models.LeaderboardEntry
	found, err = s.getJSON(storage.KeyLeaderboard, &board)
	if err != nil {
		return err
	}
	if !found {
		board = seedLeaderboard()
		if err := s.saveJSON(map[string]any{storage.KeyLeaderboard: board}); err != nil {
			return err
		}
		s.log.Info("🏆 Seeded mock leaderboard", zap.Int("entries", len(board)))
	}
	s.leaderboard = board

	s.log.Info("✅ Progression state loaded",
		zap.Bool("has_user", s.user != nil),
		zap.Int("deeds", len(s.deeds)),
		zap.Int("completions", len(s.completed)),
		zap.String("zip_code", s.zipCode),
	)
	return nil
}

// Login starts a fresh session. The new user begins at zero points on the
// lowest rank and is placed on the leaderboard immediately.
func (s *ProgressionService) Login(username string) (models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return models.User{}, fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := models.User{
		ID:       fmt.Sprintf("user-%s", uuid.NewString()),
		Username: username,
		Rank:     models.CalculateRank(0).Name,
	}

	board := append(s.copyLeaderboard(), models.LeaderboardEntry{
		ID:       user.ID,
		Username: user.Username,
		Points:   user.Points,
		Rank:     user.Rank,
	})
	sortLeaderboard(board)

	if err := s.saveJSON(map[string]any{
		storage.KeyCurrentUser: user,
		storage.KeyLeaderboard: board,
	}); err != nil {
		return models.User{}, err
	}

	s.user = &user
	s.leaderboard = board
	s.log.Info("👤 User logged in", zap.String("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Logout clears the current user. Leaderboard entries, completion history
// and created deeds survive as historical records keyed by the user id.
func (s *ProgressionService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	if err := s.store.SaveAll(map[string][]byte{storage.KeyCurrentUser: nil}); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.log.Info("👋 User logged out", zap.String("user_id", s.user.ID))
	s.user = nil
	return nil
}

// SetLocation activates the deed catalog for a location code. A catalog is
// generated at most once per code: later calls reuse the session cache or
// the stored copy. Catalogs from different codes are never merged.
func (s *ProgressionService) SetLocation(zipCode string) ([]models.Deed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deeds, cached := s.deedsByZip[zipCode]
	generated := false
	if !cached {
		found, err := s.getJSON(storage.LocationKey(zipCode), &deeds)
		if err != nil {
			return nil, err
		}
		if !found {
			deeds = GenerateDeeds(zipCode)
			generated = true
		}
	}

	entries := map[string]any{
		storage.KeyZipCode:      zipCode,
		storage.KeyCreatedDeeds: deeds,
	}
	if generated {
		entries[storage.LocationKey(zipCode)] = deeds
	}
	if err := s.saveJSON(entries); err != nil {
		return nil, err
	}

	s.zipCode = zipCode
	s.deeds = deeds
	s.deedsByZip[zipCode] = deeds
	if generated {
		s.log.Info("🗺️ Generated deed catalog", zap.String("zip_code", zipCode), zap.Int("deeds", len(deeds)))
	} else {
		s.log.Info("🗺️ Reusing deed catalog", zap.String("zip_code", zipCode), zap.Int("deeds", len(deeds)))
	}
	return s.copyDeeds(), nil
}

// CreateDeed adds a user-authored deed to the front of the active catalog
// and bumps the author's created count. Points and rank are untouched.
func (s *ProgressionService) CreateDeed(input models.Deed) (models.Deed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.Deed{}, ErrAuthRequired
	}
	if strings.TrimSpace(input.Title) == "" {
		return models.Deed{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	switch input.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return models.Deed{}, fmt.Errorf("%w: unknown difficulty %q", ErrValidation, input.Difficulty)
	}

	deed := input
	deed.ID = fmt.Sprintf("%s-%.8s", slug.Make(deed.Title), uuid.NewString())
	deed.CreatedBy = s.user.ID
	deed.CreatedAt = time.Now()
	deed.Approved = false
	if deed.Points <= 0 {
		deed.Points = deedBasePoints[deed.Difficulty]
	}
	if deed.Location == "" && s.zipCode != "" {
		deed.Location = fmt.Sprintf("Near %s", s.zipCode)
	}

	deeds := append([]models.Deed{deed}, s.deeds...)
	user := *s.user
	user.CreatedDeeds++

	if err := s.saveJSON(map[string]any{
		storage.KeyCreatedDeeds: deeds,
		storage.KeyCurrentUser:  user,
	}); err != nil {
		return models.Deed{}, err
	}

	s.deeds = deeds
	s.user = &user
	s.log.Info("📝 Deed created", zap.String("deed_id", deed.ID), zap.String("user_id", user.ID))
	return deed, nil
}

// CompleteDeed records a completion with photo proof and applies the full
// progression update: history append, point accrual, rank recompute and
// leaderboard projection refresh — persisted as one write. Completing the
// same deed again is allowed and accrues points again.
func (s *ProgressionService) CompleteDeed(deedID, photoURL string) (models.CompletedDeed, models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.CompletedDeed{}, models.User{}, ErrAuthRequired
	}
	var deed *models.Deed
	for i := range s.deeds {
		if s.deeds[i].ID == deedID {
			deed = &s.deeds[i]
			break
		}
	}
	if deed == nil {
		return models.CompletedDeed{}, models.User{}, fmt.Errorf("%w: deed %s is not in the active catalog", ErrNotFound, deedID)
	}

	completion := models.CompletedDeed{
		ID:          fmt.Sprintf("cd-%s", uuid.NewString()),
		DeedID:      deed.ID,
		UserID:      s.user.ID,
		PhotoURL:    photoURL,
		CompletedAt: time.Now(),
		Points:      deed.Points, // snapshot; later policy changes never rewrite history
	}
	completed := append(s.copyCompleted(), completion)

	user := *s.user
	user.Points += deed.Points
	user.CompletedDeeds++
	user.Rank = models.CalculateRank(user.Points).Name

	board := s.copyLeaderboard()
	updated := false
	for i := range board {
		if board[i].ID == user.ID {
			board[i].Points = user.Points
			board[i].CompletedDeeds = user.CompletedDeeds
			board[i].CreatedDeeds = user.CreatedDeeds
			board[i].Rank = user.Rank
			updated = true
			break
		}
	}
	if !updated {
		board = append(board, models.LeaderboardEntry{
			ID:             user.ID,
			Username:       user.Username,
			Points:         user.Points,
			CompletedDeeds: user.CompletedDeeds,
			CreatedDeeds:   user.CreatedDeeds,
			Rank:           user.Rank,
		})
	}
	sortLeaderboard(board)

	if err := s.saveJSON(map[string]any{
		storage.KeyCompletedDeeds: completed,
		storage.KeyCurrentUser:    user,
		storage.KeyLeaderboard:    board,
	}); err != nil {
		return models.CompletedDeed{}, models.User{}, err
	}

	s.completed = completed
	s.user = &user
	s.leaderboard = board
	s.log.Info("🎉 Deed completed",
		zap.String("deed_id", deed.ID),
		zap.String("user_id", user.ID),
		zap.Int("points_earned", deed.Points),
		zap.Int("total_points", user.Points),
		zap.String("rank", user.Rank),
	)
	return completion, user, nil
}

// CurrentUser returns a copy of the current user, or false when anonymous.
func (s *ProgressionService) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Deeds returns a copy of the active catalog.
func (s *ProgressionService) Deeds() []models.Deed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyDeeds()
}

// DeedByID looks a deed up in the active catalog.
func (s *ProgressionService) DeedByID(deedID string) (models.Deed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.deeds {
		if d.ID == deedID {
			return d, nil
		}
	}
	return models.Deed{}, fmt.Errorf("%w: deed %s is not in the active catalog", ErrNotFound, deedID)
}

// CompletedDeeds returns a copy of the completion history.
func (s *ProgressionService) CompletedDeeds() []models.CompletedDeed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyCompleted()
}

// Leaderboard returns a copy of the leaderboard, sorted by points descending.
func (s *ProgressionService) Leaderboard() []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLeaderboard()
}

// ZipCode returns the active location code, or false when none is selected.
func (s *ProgressionService) ZipCode() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zipCode, s.zipCode != ""
}

// Snapshot persists the full current state in one write. Used by the
// periodic snapshot scheduler; mutating operations already persist inline.
func (s *ProgressionService) Snapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[string]any{
		storage.KeyLeaderboard: s.leaderboard,
	}
	if s.user != nil {
		entries[storage.KeyCurrentUser] = *s.user
	}
	if len(s.completed) > 0 {
		entries[storage.KeyCompletedDeeds] = s.completed
	}
	if len(s.deeds) > 0 {
		entries[storage.KeyCreatedDeeds] = s.deeds
	}
	if s.zipCode != "" {
		entries[storage.KeyZipCode] = s.zipCode
	}
	return s.saveJSON(entries)
}

func (s *ProgressionService) copyDeeds() []models.Deed {
	return append([]models.Deed(nil), s.deeds...)
}

func (s *ProgressionService) copyCompleted() []models.CompletedDeed {
	return append([]models.CompletedDeed(nil), s.completed...)
}

func (s *ProgressionService) copyLeaderboard() []models.LeaderboardEntry {
	return append([]models.LeaderboardEntry(nil), s.leaderboard...)
}

// getJSON loads and unmarshals one key. Returns false when the key was
// never written.
func (s *ProgressionService) getJSON(key string, out any) (bool, error) {
	raw, err := s.store.Get(key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("corrupt entry %q: %w", key, err)
	}
	return true, nil
}

// saveJSON marshals every value and hands the batch to storage as one
// atomic write.
func (s *ProgressionService) saveJSON(entries map[string]any) error {
	raw := make(map[string][]byte, len(entries))
	for key, value := range entries {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %q: %w", key, err)
		}
		raw[key] = data
	}
	if err := s.store.SaveAll(raw); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

func sortLeaderboard(board []models.LeaderboardEntry) {
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Points > board[j].Points
	})
}

// seedLeaderboard fabricates the initial mock leaderboard shown before any
// real user has scored.
func seedLeaderboard() []models.LeaderboardEntry {
	board := make([]models.LeaderboardEntry, 0, 10)
	for i := 0; i < 10; i++ {
		points := rand.Intn(3000) + 100
		board = append(board, models.LeaderboardEntry{
			ID:             fmt.Sprintf("user-%d", i+1),
			Username:       fmt.Sprintf("adventurer%d", i+1),
			Points:         points,
			CompletedDeeds: rand.Intn(20) + 1,
			CreatedDeeds:   rand.Intn(5),
			Rank:           models.CalculateRank(points).Name,
		})
	}
	sortLeaderboard(board)
	return board
}
