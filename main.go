package main

import (
	"marche/config"
	"marche/database"
	"marche/kafka"
	"marche/redis"
	adminRoutes "marche/routers/adminRoutes"
	authRoutes "marche/routers/authRoutes"
	chatRoutes "marche/routers/chatRoutes"
	commentRoutes "marche/routers/commentRoutes"
	productRoutes "marche/routers/productRoutes"
	uploadRoutes "marche/routers/uploadRoutes"
	"marche/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	redis.Connect()
	kafka.Connect()
	defer kafka.Close()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	productRoutes.SetupProductRoutes(app)
	commentRoutes.SetupCommentRoutes(app)
	chatRoutes.SetupChatRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	uploadRoutes.SetupUploadRoutes(app)

	utils.InitializeChatScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
