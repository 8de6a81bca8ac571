package productController

import (
	"marche/database"
	"marche/middleware"
	"marche/models"

	"github.com/gofiber/fiber/v2"
)

// List active Products, optionally filtered by category
// GET /products
func ListProducts(c *fiber.Ctx) error {
	categoryId := c.QueryInt("categoryId", 0)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.Product{}).Where("active = true")
	if categoryId > 0 {
		query = query.Where("category_id = ?", categoryId)
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch products!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Products fetched!", fiber.Map{
		"products": products,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Get one Product
// GET /product/:id
func GetProduct(c *fiber.Ctx) error {
	productId := c.Params("id")

	var product models.Product
	if err := database.Database.Db.Where("id = ? AND active = true", productId).
		Preload("Category").
		First(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product fetched!", product)
}

// List active Categories
// GET /categories
func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("active = true").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", categories)
}
