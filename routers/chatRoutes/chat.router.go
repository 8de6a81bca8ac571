package chatRoutes

import (
	controller "marche/controllers/chat"
	"marche/middleware"
	validator "marche/validators/chat"
	"time"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App) {
	chat := app.Group("/chat")

	chat.Post("/session", validator.CreateSession(), middleware.JWTMiddleware, controller.CreateSession)
	chat.Get("/sessions", middleware.JWTMiddleware, controller.ListSessions)
	chat.Patch("/session/:id/assign", middleware.JWTMiddleware, middleware.AdminOnly, controller.AssignSession)
	chat.Patch("/session/:id/close", middleware.JWTMiddleware, controller.CloseSession)
	chat.Patch("/session/:id/reopen", middleware.JWTMiddleware, controller.ReopenSession)

	chat.Get("/session/:id/messages", middleware.JWTMiddleware, controller.GetMessages)
	chat.Post("/session/:id/message",
		middleware.RateLimit("chat-send", 30, time.Minute),
		validator.SendMessage(), middleware.JWTMiddleware, controller.SendMessage)
	chat.Post("/session/:id/attachment",
		middleware.RateLimit("chat-attach", 10, time.Minute),
		middleware.JWTMiddleware, controller.AttachFile)
}
