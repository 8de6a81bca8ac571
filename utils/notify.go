package utils

import (
	"log"
	"marche/config"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyNewSession posts a summary of a freshly opened support session to
// the operations webhook so agents see it without refreshing the console.
// Disabled when OPS_WEBHOOK_URL is not configured.
func NotifyNewSession(sessionID uint, userName, subject, priority string) {
	webhookURL := config.AppConfig.OpsWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(5 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":     "session.created",
			"sessionId": sessionID,
			"user":      userName,
			"subject":   subject,
			"priority":  priority,
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("Failed to notify ops webhook: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Ops webhook rejected notification: %s", resp.String())
	}
}
