package services

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// StartSnapshotScheduler persists a full state snapshot once a minute.
// Mutating operations already persist inline; the snapshot covers the
// window between an in-memory change and a crash mid-write.
func (s *ProgressionService) StartSnapshotScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := s.Snapshot(); err != nil {
				s.log.Error("❌ State snapshot failed", zap.Error(err))
				return
			}
			s.log.Debug("💾 State snapshot persisted")
		}),
	)
}
