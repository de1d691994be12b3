package workers

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"comquest-service/services"
	"comquest-service/utils"

	"go.uber.org/zap"
)

// orphanGracePeriod keeps freshly uploaded photos alive long enough for
// their completion record to land.
const orphanGracePeriod = time.Hour

// PhotoSweeper removes locally stored proof photos that no completion
// references (uploads whose completion call failed or was abandoned).
type PhotoSweeper struct {
	svc *services.ProgressionService
	log *zap.Logger
}

func NewPhotoSweeper(svc *services.ProgressionService, log *zap.Logger) *PhotoSweeper {
	return &PhotoSweeper{svc: svc, log: log}
}

// PollOrphanedPhotos runs the sweeper on a fixed interval until ctx ends.
func PollOrphanedPhotos(ctx context.Context, sweeper *PhotoSweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sweeper.log.Info("🧹 Photo sweeper stopped")
			return
		case <-ticker.C:
			removed, err := sweeper.SweepOnce()
			if err != nil {
				sweeper.log.Error("❌ Photo sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				sweeper.log.Info("🧹 Removed orphaned photos", zap.Int("count", removed))
			}
		}
	}
}

// SweepOnce deletes every local photo past the grace period that no
// completion references, returning how many were removed.
func (s *PhotoSweeper) SweepOnce() (int, error) {
	files, err := os.ReadDir(utils.PhotoDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	referenced := make(map[string]bool)
	for _, cd := range s.svc.CompletedDeeds() {
		referenced[cd.PhotoURL] = true
	}

	removed := 0
	now := time.Now()
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < orphanGracePeriod {
			continue
		}
		if referenced[utils.LocalPhotoURL(file.Name())] {
			continue
		}
		if err := os.Remove(filepath.Join(utils.PhotoDir, file.Name())); err != nil {
			s.log.Warn("⚠️ Failed to remove orphaned photo",
				zap.String("file", file.Name()), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
