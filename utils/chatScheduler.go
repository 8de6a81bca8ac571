package utils

import (
	"fmt"
	"log"
	"marche/config"
	"marche/database"
	"marche/models"
	"time"

	"github.com/robfig/cron/v3"
)

// logChatScheduler logs scheduler events with timestamp
func logChatScheduler(message string) {
	log.Printf("[CHAT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// RefreshSessionSnapshots recomputes the unread counter and the latest
// message pointer for every open session, so session lists can be served
// without touching the messages table.
func RefreshSessionSnapshots() {
	db := database.Database.Db

	type snapshot struct {
		SessionID     uint
		UnreadCount   int
		LastMessageID uint
	}

	var snapshots []snapshot
	if err := db.Model(&models.ChatMessage{}).
		Select("session_id, COUNT(CASE WHEN read_at IS NULL THEN 1 END) AS unread_count, MAX(id) AS last_message_id").
		Group("session_id").
		Scan(&snapshots).Error; err != nil {
		logChatScheduler("Error computing session snapshots: " + err.Error())
		return
	}

	for _, s := range snapshots {
		if err := db.Model(&models.ChatSession{}).
			Where("id = ? AND status <> ?", s.SessionID, models.SessionClosed).
			Where("unread_count <> ? OR last_message_id <> ?", s.UnreadCount, s.LastMessageID).
			Updates(map[string]interface{}{
				"unread_count":    s.UnreadCount,
				"last_message_id": s.LastMessageID,
			}).Error; err != nil {
			logChatScheduler("Error updating session snapshot: " + err.Error())
		}
	}
}

// SweepStaleWaitingSessions closes waiting sessions that nobody picked up
// within the configured TTL. Runs once a day.
func SweepStaleWaitingSessions() {
	db := database.Database.Db
	now := time.Now()
	cutoff := now.Add(-time.Duration(config.AppConfig.WaitingSessionTTLHours) * time.Hour)

	result := db.Model(&models.ChatSession{}).
		Where("status = ? AND updated_at < ?", models.SessionWaiting, cutoff).
		Updates(map[string]interface{}{
			"status":    models.SessionClosed,
			"closed_at": now,
		})
	if result.Error != nil {
		logChatScheduler("Error sweeping stale waiting sessions: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logChatScheduler(fmt.Sprintf("Closed %d stale waiting sessions", result.RowsAffected))
	}
}

// InitializeChatScheduler starts the snapshot refresher and the stale
// session sweep.
func InitializeChatScheduler() *cron.Cron {
	logChatScheduler("Initializing chat scheduler...")

	c := cron.New()

	c.AddFunc("@every 3s", func() {
		RefreshSessionSnapshots()
	})

	c.AddFunc("@daily", func() {
		SweepStaleWaitingSessions()
	})

	c.Start()

	logChatScheduler("Chat scheduler initialized successfully")
	return c
}
