package chatController

import (
	"fmt"
	"marche/config"
	"marche/database"
	"marche/middleware"
	"marche/models"
	chatValidators "marche/validators/chat"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{JWTKey: "test", WaitingSessionTTLHours: 72}
	return db
}

// newTestApp wires the chat routes behind a stub auth layer that trusts the
// given user id.
func newTestApp(userId uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", userId)
		return c.Next()
	})

	app.Post("/chat/session/:id/message", chatValidators.SendMessage(), SendMessage)
	app.Patch("/chat/session/:id/close", CloseSession)
	app.Patch("/chat/session/:id/reopen", ReopenSession)
	return app
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: role, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createSession(t *testing.T, db *gorm.DB, userId uint, status string) models.ChatSession {
	t.Helper()
	session := models.ChatSession{
		UserID:   userId,
		Status:   status,
		Priority: models.PriorityNormal,
		Subject:  "General Support",
	}
	require.NoError(t, db.Create(&session).Error)
	return session
}

func postJSON(t *testing.T, app *fiber.App, method, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSendMessagePromotesWaitingSession(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	session := createSession(t, db, user.ID, models.SessionWaiting)

	app := newTestApp(user.ID)
	path := fmt.Sprintf("/chat/session/%d/message", session.ID)

	code := postJSON(t, app, "POST", path, `{"body":"hello there"}`)
	assert.Equal(t, fiber.StatusOK, code)

	var refreshed models.ChatSession
	require.NoError(t, db.First(&refreshed, session.ID).Error)
	assert.Equal(t, models.SessionActive, refreshed.Status)

	// A second message leaves the session active
	code = postJSON(t, app, "POST", path, `{"body":"anyone?"}`)
	assert.Equal(t, fiber.StatusOK, code)

	require.NoError(t, db.First(&refreshed, session.ID).Error)
	assert.Equal(t, models.SessionActive, refreshed.Status)

	var count int64
	db.Model(&models.ChatMessage{}).Where("session_id = ?", session.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestSendMessageRejectedOnClosedSession(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	session := createSession(t, db, user.ID, models.SessionClosed)

	app := newTestApp(user.ID)
	path := fmt.Sprintf("/chat/session/%d/message", session.ID)

	code := postJSON(t, app, "POST", path, `{"body":"too late"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	var count int64
	db.Model(&models.ChatMessage{}).Where("session_id = ?", session.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSendMessageRejectsWhitespaceBody(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Cara", "cara@example.com", models.RoleUser)
	session := createSession(t, db, user.ID, models.SessionWaiting)

	app := newTestApp(user.ID)
	path := fmt.Sprintf("/chat/session/%d/message", session.ID)

	code := postJSON(t, app, "POST", path, `{"body":"   \t  "}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	// Nothing reached the database and the session stayed waiting
	var count int64
	db.Model(&models.ChatMessage{}).Where("session_id = ?", session.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var refreshed models.ChatSession
	require.NoError(t, db.First(&refreshed, session.ID).Error)
	assert.Equal(t, models.SessionWaiting, refreshed.Status)
}

func TestSendMessageDeniedForStranger(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "Dana", "dana@example.com", models.RoleUser)
	stranger := createUser(t, db, "Eve", "eve@example.com", models.RoleUser)
	session := createSession(t, db, owner.ID, models.SessionActive)

	app := newTestApp(stranger.ID)
	path := fmt.Sprintf("/chat/session/%d/message", session.ID)

	code := postJSON(t, app, "POST", path, `{"body":"let me in"}`)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestMarkMessagesReadIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "Finn", "finn@example.com", models.RoleUser)
	agent := createUser(t, db, "Gail", "gail@example.com", models.RoleAdmin)
	session := createSession(t, db, owner.ID, models.SessionActive)

	incoming := models.ChatMessage{SessionID: session.ID, SenderID: agent.ID, Body: "hi", Type: models.MessageText}
	outgoing := models.ChatMessage{SessionID: session.ID, SenderID: owner.ID, Body: "hey", Type: models.MessageText}
	require.NoError(t, db.Create(&incoming).Error)
	require.NoError(t, db.Create(&outgoing).Error)

	affected, err := markMessagesRead(db, session.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var read models.ChatMessage
	require.NoError(t, db.First(&read, incoming.ID).Error)
	require.NotNil(t, read.ReadAt)
	firstStamp := *read.ReadAt

	// Second pass touches nothing and keeps the original timestamp
	affected, err = markMessagesRead(db, session.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	require.NoError(t, db.First(&read, incoming.ID).Error)
	require.NotNil(t, read.ReadAt)
	assert.Equal(t, firstStamp.Unix(), read.ReadAt.Unix())

	// The reader's own messages are never stamped
	var own models.ChatMessage
	require.NoError(t, db.First(&own, outgoing.ID).Error)
	assert.Nil(t, own.ReadAt)
}

func TestCloseAndReopenSession(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Hugo", "hugo@example.com", models.RoleUser)
	session := createSession(t, db, user.ID, models.SessionActive)

	app := newTestApp(user.ID)

	code := postJSON(t, app, "PATCH", fmt.Sprintf("/chat/session/%d/close", session.ID), "")
	assert.Equal(t, fiber.StatusOK, code)

	var closed models.ChatSession
	require.NoError(t, db.First(&closed, session.ID).Error)
	assert.Equal(t, models.SessionClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)

	// Closing twice is rejected
	code = postJSON(t, app, "PATCH", fmt.Sprintf("/chat/session/%d/close", session.ID), "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	// Unassigned session reopens as waiting
	code = postJSON(t, app, "PATCH", fmt.Sprintf("/chat/session/%d/reopen", session.ID), "")
	assert.Equal(t, fiber.StatusOK, code)

	var reopened models.ChatSession
	require.NoError(t, db.First(&reopened, session.ID).Error)
	assert.Equal(t, models.SessionWaiting, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)
}

func TestReopenAssignedSessionGoesActive(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "Iris", "iris@example.com", models.RoleUser)
	agent := createUser(t, db, "Jack", "jack@example.com", models.RoleAdmin)

	session := createSession(t, db, user.ID, models.SessionClosed)
	require.NoError(t, db.Model(&session).Update("admin_id", agent.ID).Error)

	app := newTestApp(user.ID)
	code := postJSON(t, app, "PATCH", fmt.Sprintf("/chat/session/%d/reopen", session.ID), "")
	assert.Equal(t, fiber.StatusOK, code)

	var reopened models.ChatSession
	require.NoError(t, db.First(&reopened, session.ID).Error)
	assert.Equal(t, models.SessionActive, reopened.Status)
}

func TestAssignSessionRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, "Kai", "kai@example.com", models.RoleUser)
	agent := createUser(t, db, "Lena", "lena@example.com", models.RoleAdmin)
	session := createSession(t, db, owner.ID, models.SessionWaiting)

	newAssignApp := func(userId uint) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userId", userId)
			return c.Next()
		})
		app.Patch("/chat/session/:id/assign", middleware.AdminOnly, AssignSession)
		return app
	}
	path := fmt.Sprintf("/chat/session/%d/assign", session.ID)

	// A regular user is rejected and the session is untouched
	code := postJSON(t, newAssignApp(owner.ID), "PATCH", path, "")
	assert.Equal(t, fiber.StatusForbidden, code)

	var refreshed models.ChatSession
	require.NoError(t, db.First(&refreshed, session.ID).Error)
	assert.Equal(t, models.SessionWaiting, refreshed.Status)
	assert.Equal(t, uint(0), refreshed.AdminID)

	// An admin assign pins the agent and activates the session; an
	// assigned session is never waiting
	code = postJSON(t, newAssignApp(agent.ID), "PATCH", path, "")
	assert.Equal(t, fiber.StatusOK, code)

	require.NoError(t, db.First(&refreshed, session.ID).Error)
	assert.Equal(t, agent.ID, refreshed.AdminID)
	assert.Equal(t, models.SessionActive, refreshed.Status)

	// Closed sessions cannot be assigned
	now := time.Now()
	require.NoError(t, db.Model(&refreshed).Updates(map[string]interface{}{
		"status":    models.SessionClosed,
		"closed_at": &now,
	}).Error)

	code = postJSON(t, newAssignApp(agent.ID), "PATCH", path, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestReopenStatus(t *testing.T) {
	assert.Equal(t, models.SessionWaiting, reopenStatus(0))
	assert.Equal(t, models.SessionActive, reopenStatus(7))
}
