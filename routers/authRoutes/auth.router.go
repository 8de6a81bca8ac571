package authRoutes

import (
	authControllers "marche/controllers/auth"
	"marche/middleware"
	authValidators "marche/validators/auth"
	"time"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", middleware.RateLimit("signup", 5, time.Minute), authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", middleware.RateLimit("login", 10, time.Minute), authValidators.Login(), authControllers.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.GetProfile)
	authGroup.Patch("/profile", middleware.JWTMiddleware, authControllers.UpdateProfile)
}
