package chatController

import (
	"marche/database"
	"marche/kafka"
	"marche/middleware"
	"marche/models"
	"marche/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionResponse embeds the session with display names and the last
// message snapshot resolved
type SessionResponse struct {
	models.ChatSession
	UserName    string              `json:"userName"`
	AdminName   string              `json:"adminName"`
	LastMessage *models.ChatMessage `json:"lastMessage"`
}

// Create Chat Session
// POST /chat/session
func CreateSession(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCreateSession").(*struct {
		Subject  string `json:"subject"`
		Priority string `json:"priority"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	session := models.ChatSession{
		UserID:   userId,
		Status:   models.SessionWaiting,
		Priority: reqData.Priority,
		Subject:  reqData.Subject,
	}

	if err := db.Create(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chat session!", nil)
	}

	go utils.NotifyNewSession(session.ID, user.Name, session.Subject, session.Priority)
	kafka.Publish(kafka.TopicChatSessions, user.Email, session)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chat session created!", session)
}

// List Chat Sessions (role scoped: admins see all, users see their own)
// GET /chat/sessions
func ListSessions(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var sessions []models.ChatSession
	query := db.Model(&models.ChatSession{})
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", userId)
	}
	if err := query.Order("updated_at DESC").Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chat sessions!", nil)
	}

	// Resolve display names and last message snapshots in bulk
	userNames := make(map[uint]string)
	lastIDs := make([]uint, 0, len(sessions))
	for _, s := range sessions {
		userNames[s.UserID] = ""
		if s.AdminID > 0 {
			userNames[s.AdminID] = ""
		}
		if s.LastMessageID > 0 {
			lastIDs = append(lastIDs, s.LastMessageID)
		}
	}

	ids := make([]uint, 0, len(userNames))
	for id := range userNames {
		ids = append(ids, id)
	}
	var users []models.User
	if len(ids) > 0 {
		db.Select("id, name").Where("id IN ?", ids).Find(&users)
	}
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	lastMessages := make(map[uint]models.ChatMessage)
	if len(lastIDs) > 0 {
		var msgs []models.ChatMessage
		db.Where("id IN ?", lastIDs).Find(&msgs)
		for _, m := range msgs {
			lastMessages[m.ID] = m
		}
	}

	response := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		item := SessionResponse{
			ChatSession: s,
			UserName:    userNames[s.UserID],
		}
		if s.AdminID > 0 {
			item.AdminName = userNames[s.AdminID]
		}
		if m, ok := lastMessages[s.LastMessageID]; ok {
			item.LastMessage = &m
		}
		response = append(response, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat sessions fetched!", response)
}

// Assign Chat Session to the calling admin
// PATCH /chat/session/:id/assign
func AssignSession(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	sessionId := c.Params("id")

	db := database.Database.Db

	var session models.ChatSession
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chat session not found!", nil)
	}

	if session.Status == models.SessionClosed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot assign a closed session!", nil)
	}

	// Assignment always leaves the session active; an assigned session is
	// never waiting
	if err := db.Model(&session).Updates(map[string]interface{}{
		"admin_id": userId,
		"status":   models.SessionActive,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign chat session!", nil)
	}

	var owner models.User
	if err := db.First(&owner, session.UserID).Error; err == nil {
		go utils.SendSessionAssignedEmail(owner.Email, owner.Name, session.Subject)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat session assigned!", session)
}

// Close Chat Session
// PATCH /chat/session/:id/close
func CloseSession(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session is already closed!", nil)
	}

	now := time.Now()
	if err := db.Model(&session).Updates(map[string]interface{}{
		"status":    models.SessionClosed,
		"closed_at": &now,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to close chat session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat session closed!", session)
}

// Reopen Chat Session
// PATCH /chat/session/:id/reopen
func ReopenSession(c *fiber.Ctx) error {
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

	if session.Status != models.SessionClosed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session is not closed!", nil)
	}

	if err := db.Model(&session).Updates(map[string]interface{}{
		"status":    reopenStatus(session.AdminID),
		"closed_at": nil,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reopen chat session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat session reopened!", session)
}
