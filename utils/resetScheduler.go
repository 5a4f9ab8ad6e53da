package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"kursplatforma/models"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[RESET-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// clearExpiredResetTokens removes password-reset tokens past their expiry.
func clearExpiredResetTokens(db *gorm.DB) {
	res := db.Model(&models.User{}).
		Where("reset_token IS NOT NULL AND reset_token_vazi_do < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_token":         nil,
			"reset_token_vazi_do": nil,
		})
	if res.Error != nil {
		logScheduler("Error clearing expired reset tokens: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Cleared %d expired reset tokens", res.RowsAffected))
	}
}

// StartResetTokenScheduler runs the expired-token cleanup every hour.
func StartResetTokenScheduler(db *gorm.DB) *cron.Cron {
	scheduler := cron.New()

	if _, err := scheduler.AddFunc("@hourly", func() { clearExpiredResetTokens(db) }); err != nil {
		log.Fatalf("Failed to register reset-token scheduler: %v", err)
	}

	scheduler.Start()
	logScheduler("Scheduler started")
	return scheduler
}
