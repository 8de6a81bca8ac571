package chatController

import (
	"fmt"
	"log"
	"marche/config"
	"marche/database"
	"marche/kafka"
	"marche/middleware"
	"marche/models"
	"marche/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MessageResponse embeds the message with the sender display name resolved
type MessageResponse struct {
	models.ChatMessage
	SenderName string `json:"senderName"`
}

// reopenStatus returns the status a closed session goes back to. An
// assigned session is never waiting.
func reopenStatus(adminID uint) string {
	if adminID > 0 {
		return models.SessionActive
	}
	return models.SessionWaiting
}

// canManageSession reports whether the caller may close or reopen the
// session: the requesting user or any admin.
func canManageSession(db *gorm.DB, session *models.ChatSession, userId uint) bool {
	if session.UserID == userId {
		return true
	}
	var user models.User
	return db.Where("id = ? AND role = ? AND is_deleted = false", userId, models.RoleAdmin).
		First(&user).Error == nil
}

// markMessagesRead stamps read_at on every message in the session not
// authored by the reader. The filter on read_at IS NULL makes a second call
// a no-op: the timestamp is set once and never rewritten.
func markMessagesRead(db *gorm.DB, sessionId uint, readerId uint) (int64, error) {
	now := time.Now()
	result := db.Model(&models.ChatMessage{}).
		Where("session_id = ? AND sender_id <> ? AND read_at IS NULL", sessionId, readerId).
		Update("read_at", &now)
	return result.RowsAffected, result.Error
}

// Get Messages of a session (opening the thread marks incoming as read)
// GET /chat/session/:id/messages
func GetMessages(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	sessionId := c.Params("id")

	db := database.Database.Db

	var session models.ChatSession
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chat session not found!", nil)
	}

	if !canManageSession(db, &session, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
	}

	// Ascending creation order; clients must not re-sort
	var messages []models.ChatMessage
	if err := db.Where("session_id = ?", session.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	if _, err := markMessagesRead(db, session.ID, userId); err != nil {
		// A failed read receipt leaves the thread readable; heal on next open
		log.Printf("Failed to mark messages read for session %d: %v", session.ID, err)
	}

	// Resolve sender names
	senderNames := make(map[uint]string)
	for _, m := range messages {
		senderNames[m.SenderID] = ""
	}
	ids := make([]uint, 0, len(senderNames))
	for id := range senderNames {
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		var users []models.User
		db.Select("id, name").Where("id IN ?", ids).Find(&users)
		for _, u := range users {
			senderNames[u.ID] = u.Name
		}
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, MessageResponse{
			ChatMessage: m,
			SenderName:  senderNames[m.SenderID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched!", response)
}

// Send Message
// POST /chat/session/:id/message
func SendMessage(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	sessionId := c.Params("id")

	reqData, ok := c.Locals("validatedSendMessage").(*struct {
		Body string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var session models.ChatSession
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chat session not found!", nil)
	}

	if !canManageSession(db, &session, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
	}

	if session.Status == models.SessionClosed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot send messages to a closed session!", nil)
	}

	msg := models.ChatMessage{
		SessionID: session.ID,
		SenderID:  userId,
		Body:      reqData.Body,
		Type:      models.MessageText,
	}

	if err := db.Create(&msg).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	// First reply promotes a waiting session to active
	if session.Status == models.SessionWaiting {
		if err := db.Model(&session).Update("status", models.SessionActive).Error; err != nil {
			log.Printf("Failed to promote session %d to active: %v", session.ID, err)
		}
	}

	kafka.Publish(kafka.TopicChatMessages, fmt.Sprintf("session-%d", session.ID), msg)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message sent!", msg)
}

// Attach File to a session as a file message
// POST /chat/session/:id/attachment
func AttachFile(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	sessionId := c.Params("id")

	db := database.Database.Db

	var session models.ChatSession
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chat session not found!", nil)
	}

	if !canManageSession(db, &session, userId) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
	}

	if session.Status == models.SessionClosed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot send messages to a closed session!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	savedPath, objectName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Failed to store chat attachment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	upload := models.Upload{
		UserID:      userId,
		Kind:        "attachment",
		ObjectName:  objectName,
		Filename:    file.Filename,
		URL:         utils.GetFileURL(savedPath),
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	}
	if err := db.Create(&upload).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record upload!", nil)
	}

	msg := models.ChatMessage{
		SessionID: session.ID,
		SenderID:  userId,
		Body:      fmt.Sprintf("Shared file: %s", file.Filename),
		Type:      models.MessageFile,
		FileURL:   upload.URL,
	}

	if err := db.Create(&msg).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	kafka.Publish(kafka.TopicChatMessages, fmt.Sprintf("session-%d", session.ID), msg)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File shared!", msg)
}
