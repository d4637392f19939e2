package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/models"
)

// TokenPurgeJob removes expired and revoked refresh tokens once a day.
type TokenPurgeJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *slog.Logger
}

func NewTokenPurgeJob(db *gorm.DB, logger *slog.Logger) *TokenPurgeJob {
	return &TokenPurgeJob{
		db:     db,
		cron:   cron.New(),
		logger: logger.With("component", "token_purge_job"),
	}
}

func (j *TokenPurgeJob) Start() error {
	_, err := j.cron.AddFunc("@daily", func() {
		ctx := context.Background()
		res := j.db.WithContext(ctx).
			Where("expires_at < ? OR revoked = ?", time.Now().Unix(), true).
			Delete(&models.RefreshToken{})
		if res.Error != nil {
			j.logger.ErrorContext(ctx, "token purge failed", "error", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			j.logger.InfoContext(ctx, "purged refresh tokens", "count", res.RowsAffected)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	return nil
}

func (j *TokenPurgeJob) Stop() {
	j.cron.Stop()
}
