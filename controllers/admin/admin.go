package adminController

import (
	"marche/database"
	"marche/middleware"
	"marche/models"
	"marche/utils"
	validator "marche/validators/product"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// Create Product
// POST /admin/product
func CreateProduct(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProduct").(*validator.ProductDTO)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if reqData.CategoryID > 0 {
		var category models.Category
		if err := db.First(&category, reqData.CategoryID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
		}
	}

	product := models.Product{
		CategoryID:  reqData.CategoryID,
		Name:        reqData.Name,
		NameFr:      reqData.NameFr,
		Description: reqData.Description,
		Price:       reqData.Price,
		Stock:       reqData.Stock,
		ImageURL:    reqData.ImageURL,
		Active:      true,
	}
	if len(reqData.Attributes) > 0 {
		product.Attributes = datatypes.JSON(reqData.Attributes)
	}

	if err := db.Create(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Product created!", product)
}

// Update Product
// PUT /admin/product/:id
func UpdateProduct(c *fiber.Ctx) error {
	productId := c.Params("id")

	reqData, ok := c.Locals("validatedProduct").(*validator.ProductDTO)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var product models.Product
	if err := db.First(&product, productId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	updates := map[string]interface{}{
		"category_id": reqData.CategoryID,
		"name":        reqData.Name,
		"name_fr":     reqData.NameFr,
		"description": reqData.Description,
		"price":       reqData.Price,
		"stock":       reqData.Stock,
		"image_url":   reqData.ImageURL,
	}
	if len(reqData.Attributes) > 0 {
		updates["attributes"] = datatypes.JSON(reqData.Attributes)
	}

	if err := db.Model(&product).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product updated!", product)
}

// Delete Product (kept out of the catalog, order history intact)
// DELETE /admin/product/:id
func DeleteProduct(c *fiber.Ctx) error {
	productId := c.Params("id")

	db := database.Database.Db

	var product models.Product
	if err := db.First(&product, productId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	if err := db.Model(&product).Update("active", false).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product deleted!", nil)
}

// List all Products including inactive ones
// GET /admin/products
func ListAllProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := database.Database.Db.Preload("Category").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch products!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Products fetched!", products)
}

// Create Category
// POST /admin/category
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*validator.CategoryDTO)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		NameFr:      reqData.NameFr,
		Description: reqData.Description,
		Active:      true,
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created!", category)
}

// Update Category
// PUT /admin/category/:id
func UpdateCategory(c *fiber.Ctx) error {
	categoryId := c.Params("id")

	reqData, ok := c.Locals("validatedCategory").(*validator.CategoryDTO)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.First(&category, categoryId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if err := db.Model(&category).Updates(map[string]interface{}{
		"name":        reqData.Name,
		"name_fr":     reqData.NameFr,
		"description": reqData.Description,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated!", category)
}

// Delete Category
// DELETE /admin/category/:id
func DeleteCategory(c *fiber.Ctx) error {
	categoryId := c.Params("id")

	db := database.Database.Db

	var category models.Category
	if err := db.First(&category, categoryId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if err := db.Model(&category).Update("active", false).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted!", nil)
}

// List all Users
// GET /admin/users
func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Where("is_deleted = false").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched!", users)
}

// List all Orders with optional status filter
// GET /admin/orders
func ListOrders(c *fiber.Ctx) error {
	status := strings.ToUpper(c.Query("status"))

	db := database.Database.Db

	query := db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched!", orders)
}

// Update Order status
// PATCH /admin/order/status
func UpdateOrderStatus(c *fiber.Ctx) error {
	reqData := new(struct {
		OrderID uint   `json:"orderId"`
		Status  string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	validStatus := map[string]bool{
		models.OrderPending:   true,
		models.OrderPaid:      true,
		models.OrderShipped:   true,
		models.OrderDelivered: true,
		models.OrderCancelled: true,
	}
	status := strings.ToUpper(reqData.Status)
	if reqData.OrderID == 0 || !validStatus[status] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OrderID and a valid status are required!", nil)
	}

	db := database.Database.Db

	var order models.Order
	if err := db.First(&order, reqData.OrderID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update order!", nil)
	}

	var owner models.User
	if err := db.First(&owner, order.UserID).Error; err == nil {
		go utils.SendOrderStatusEmail(owner.Email, owner.Name, order.ID, status)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order updated!", order)
}
