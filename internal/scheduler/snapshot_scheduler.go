package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ejoh/storefront-backend/internal/kvstore"
	"github.com/ejoh/storefront-backend/pkg/logger"
)

const snapshotTimeout = 30 * time.Second

// SnapshotScheduler periodically copies every model key to a backup: key
// in the same store. The backup is a recovery aid for the file and memory
// backends, where a bad write or crash can lose the live copy.
type SnapshotScheduler struct {
	cron     *cron.Cron
	store    kvstore.Store
	cronSpec string
}

func NewSnapshotScheduler(store kvstore.Store, cronSpec string) *SnapshotScheduler {
	return &SnapshotScheduler{
		cron:     cron.New(),
		store:    store,
		cronSpec: cronSpec,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *SnapshotScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronSpec, s.snapshot)
	if err != nil {
		logger.Error("Failed to add cron job for state snapshot", err)
		return err
	}

	s.cron.Start()
	logger.Info("Snapshot scheduler started", map[string]interface{}{
		"spec": s.cronSpec,
	})
	return nil
}

// Stop halts the cron loop.
func (s *SnapshotScheduler) Stop() {
	logger.Info("Stopping snapshot scheduler...", nil)
	s.cron.Stop()
	logger.Info("Snapshot scheduler stopped", nil)
}

func (s *SnapshotScheduler) snapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	logger.Info("Starting state snapshot", nil)

	copied := 0
	for _, key := range kvstore.ModelKeys {
		value, found, err := s.store.Get(ctx, key)
		if err != nil {
			logger.Error("Snapshot read failed", err, map[string]interface{}{
				"key": key,
			})
			continue
		}
		if !found {
			continue
		}

		if err := s.store.Set(ctx, "backup:"+key, value); err != nil {
			logger.Error("Snapshot write failed", err, map[string]interface{}{
				"key": key,
			})
			continue
		}
		copied++
	}

	logger.Info("State snapshot completed", map[string]interface{}{
		"keys_copied": copied,
	})
}
