package productController

import (
	"marche/database"
	"marche/middleware"
	"marche/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Create Order with its items in one transaction
// POST /order
func CreateOrder(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		ShippingAddress string `json:"shippingAddress"`
		Items           []struct {
			ProductID uint `json:"productId"`
			Quantity  int  `json:"quantity"`
		} `json:"items"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if len(reqData.Items) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Order must contain at least one item!", nil)
	}
	for _, item := range reqData.Items {
		if item.ProductID == 0 || item.Quantity < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Each item needs a product and a positive quantity!", nil)
		}
	}

	db := database.Database.Db

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(reqData.Items))

		for _, item := range reqData.Items {
			var product models.Product
			if err := tx.Where("id = ? AND active = true", item.ProductID).First(&product).Error; err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return gorm.ErrInvalidData
			}
			if err := tx.Model(&product).Update("stock", product.Stock-item.Quantity).Error; err != nil {
				return err
			}
			total += product.Price * float64(item.Quantity)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
		}

		order = models.Order{
			UserID:          userId,
			Total:           total,
			Status:          models.OrderPending,
			ShippingAddress: reqData.ShippingAddress,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to place order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order placed!", order)
}

// List the caller's Orders with items and product snapshots
// GET /orders
func MyOrders(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var orders []models.Order
	if err := database.Database.Db.Where("user_id = ?", userId).
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched!", orders)
}
