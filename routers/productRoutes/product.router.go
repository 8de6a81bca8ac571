package productRoutes

import (
	controller "marche/controllers/product"
	"marche/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App) {
	app.Get("/products", controller.ListProducts)
	app.Get("/product/:id", controller.GetProduct)
	app.Get("/categories", controller.ListCategories)

	app.Post("/order", middleware.JWTMiddleware, controller.CreateOrder)
	app.Get("/orders", middleware.JWTMiddleware, controller.MyOrders)
}
