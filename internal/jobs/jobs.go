package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/logger"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/stats"
)

// StartDailyScheduler registers the recurring background jobs.
func StartDailyScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	// Runs every day at 00:05 AM
	c.AddFunc("5 0 * * *", func() {
		logger.Log.Info("Running daily appointment snapshot job")
		RunDailySnapshot(db, time.Now().UTC())
	})

	c.Start()
	return c
}

// RunDailySnapshot computes and logs the KPI summary for the previous calendar
// day. It is read-only; the numbers land in the logs for the ops dashboard.
func RunDailySnapshot(db *gorm.DB, now time.Time) {
	dayEnd := now.Truncate(24 * time.Hour)
	dayStart := dayEnd.Add(-24 * time.Hour)

	var appts []models.Appointment
	if err := db.Where("scheduled_at >= ? AND scheduled_at < ?", dayStart, dayEnd).Find(&appts).Error; err != nil {
		logger.Log.Error("Daily snapshot query failed", zap.Error(err))
		return
	}

	summary := stats.Summarize(appts)
	logger.Log.Info("Daily appointment snapshot",
		zap.String("day", dayStart.Format("2006-01-02")),
		zap.Int("total", summary.Total),
		zap.Int("aceptado", summary.Accepted),
		zap.Int("realizado", summary.Completed),
		zap.Int("cancelado", summary.Cancelled),
		zap.Int("rechazado", summary.Rejected),
		zap.Int("completionRate", summary.CompletionRate),
	)
}
