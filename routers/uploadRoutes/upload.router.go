package uploadRoutes

import (
	controller "marche/controllers/upload"
	"marche/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App) {
	upload := app.Group("/upload")

	upload.Post("/image", middleware.RateLimit("upload", 20, time.Minute), middleware.JWTMiddleware, controller.UploadImage)
}
