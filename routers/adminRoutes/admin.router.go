package adminRoutes

import (
	controller "marche/controllers/admin"
	"marche/middleware"
	validator "marche/validators/product"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	admin.Post("/product", validator.Product(), controller.CreateProduct)
	admin.Put("/product/:id", validator.Product(), controller.UpdateProduct)
	admin.Delete("/product/:id", controller.DeleteProduct)
	admin.Get("/products", controller.ListAllProducts)

	admin.Post("/category", validator.Category(), controller.CreateCategory)
	admin.Put("/category/:id", validator.Category(), controller.UpdateCategory)
	admin.Delete("/category/:id", controller.DeleteCategory)

	admin.Get("/users", controller.ListUsers)
	admin.Get("/orders", controller.ListOrders)
	admin.Patch("/order/status", controller.UpdateOrderStatus)

	admin.Get("/dashboard", controller.Dashboard)
}
