package storage

import (
	"errors"
	"fmt"

	"comquest-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists entries in a single store_entries table in Postgres.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Migrate creates the backing table.
func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&models.StoreEntry{})
}

func (s *GormStore) Get(key string) ([]byte, error) {
	var entry models.StoreEntry
	err := s.DB.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return entry.Value, nil
}

// SaveAll upserts and deletes inside one transaction so a logical operation
// spanning user, leaderboard and history is all-or-nothing.
func (s *GormStore) SaveAll(entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			if value == nil {
				if err := tx.Delete(&models.StoreEntry{}, "key = ?", key).Error; err != nil {
					return fmt.Errorf("failed to delete %q: %w", key, err)
				}
				continue
			}
			entry := models.StoreEntry{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to write %q: %w", key, err)
			}
		}
		return nil
	})
}
