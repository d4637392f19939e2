package jobs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/models"
	"github.com/mkhaliddev/foodrush/internal/uploads"
)

// UploadSweeperJob reconciles the upload directory with the food store.
// Image deletion on update/delete is best effort, so files can be left
// behind; the sweeper removes any file no food item references.
type UploadSweeperJob struct {
	db     *gorm.DB
	files  *uploads.Storage
	cron   *cron.Cron
	logger *slog.Logger
}

// minAge protects in-flight uploads that have no food row yet.
const minAge = time.Hour

func NewUploadSweeperJob(db *gorm.DB, files *uploads.Storage, logger *slog.Logger) *UploadSweeperJob {
	return &UploadSweeperJob{
		db:     db,
		files:  files,
		cron:   cron.New(),
		logger: logger.With("component", "upload_sweeper_job"),
	}
}

func (j *UploadSweeperJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	return nil
}

func (j *UploadSweeperJob) Stop() {
	j.cron.Stop()
}

func (j *UploadSweeperJob) sweep(ctx context.Context) {
	names, err := j.files.List()
	if err != nil {
		j.logger.ErrorContext(ctx, "sweep failed to list uploads", "error", err)
		return
	}

	removed := 0
	for _, name := range names {
		path := filepath.Join(j.files.Dir, name)
		info, err := os.Stat(path)
		if err != nil || time.Since(info.ModTime()) < minAge {
			continue
		}

		var count int64
		if err := j.db.WithContext(ctx).Model(&models.FoodItem{}).
			Where("image_url LIKE ?", "%/"+name).Count(&count).Error; err != nil {
			j.logger.ErrorContext(ctx, "sweep reference check failed", "file", name, "error", err)
			continue
		}
		if count > 0 {
			continue
		}

		if err := os.Remove(path); err != nil {
			j.logger.WarnContext(ctx, "sweep failed to remove file", "file", name, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "swept orphaned uploads", "count", removed)
	}
}
