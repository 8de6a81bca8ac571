package adminController

import (
	"marche/database"
	"marche/middleware"
	"marche/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// Dashboard returns storefront counters and revenue windows
// GET /admin/dashboard
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var productCount, userCount, orderCount int64
	db.Model(&models.Product{}).Where("active = true").Count(&productCount)
	db.Model(&models.User{}).Where("is_deleted = false").Count(&userCount)
	db.Model(&models.Order{}).Count(&orderCount)

	var waitingSessions, activeSessions int64
	db.Model(&models.ChatSession{}).Where("status = ?", models.SessionWaiting).Count(&waitingSessions)
	db.Model(&models.ChatSession{}).Where("status = ?", models.SessionActive).Count(&activeSessions)

	var pendingComments int64
	db.Model(&models.Comment{}).Where("status = ?", models.CommentPending).Count(&pendingComments)

	// Revenue windows; cancelled orders are not revenue
	revenueQuery := func(since interface{}) float64 {
		var total float64
		q := db.Model(&models.Order{}).Where("status <> ?", models.OrderCancelled)
		if since != nil {
			q = q.Where("created_at >= ?", since)
		}
		q.Select("COALESCE(SUM(total), 0)").Scan(&total)
		return total
	}

	revenueToday := revenueQuery(now.BeginningOfDay())
	revenueMonth := revenueQuery(now.BeginningOfMonth())
	revenueTotal := revenueQuery(nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched!", fiber.Map{
		"products":        productCount,
		"users":           userCount,
		"orders":          orderCount,
		"waitingSessions": waitingSessions,
		"activeSessions":  activeSessions,
		"pendingComments": pendingComments,
		"revenue": fiber.Map{
			"today": revenueToday,
			"month": revenueMonth,
			"total": revenueTotal,
		},
	})
}
