package jobs

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/uploads"
)

// JobManager starts and stops the background jobs as one unit.
type JobManager struct {
	tokenPurge    *TokenPurgeJob
	uploadSweeper *UploadSweeperJob
}

func NewJobManager(db *gorm.DB, files *uploads.Storage, logger *slog.Logger) *JobManager {
	return &JobManager{
		tokenPurge:    NewTokenPurgeJob(db, logger),
		uploadSweeper: NewUploadSweeperJob(db, files, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.tokenPurge.Start(); err != nil {
		return fmt.Errorf("failed to start token purge job: %w", err)
	}

	if err := jm.uploadSweeper.Start(); err != nil {
		jm.tokenPurge.Stop()
		return fmt.Errorf("failed to start upload sweeper job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.uploadSweeper.Stop()
	jm.tokenPurge.Stop()
}
