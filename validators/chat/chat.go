package chatValidators

import (
	"marche/middleware"
	"marche/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Subject  string `json:"subject"`
			Priority string `json:"priority"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Subject = strings.TrimSpace(reqData.Subject)
		if reqData.Subject == "" {
			reqData.Subject = "General Support"
		} else if len(reqData.Subject) > 200 {
			errors["subject"] = "Subject must not exceed 200 characters!"
		}

		validPriority := map[string]bool{
			models.PriorityLow:    true,
			models.PriorityNormal: true,
			models.PriorityHigh:   true,
			models.PriorityUrgent: true,
		}
		if reqData.Priority == "" {
			reqData.Priority = models.PriorityNormal
		} else if !validPriority[strings.ToLower(reqData.Priority)] {
			errors["priority"] = "Invalid priority! Allowed: low, normal, high, urgent"
		} else {
			reqData.Priority = strings.ToLower(reqData.Priority)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateSession", reqData)
		return c.Next()
	}
}

func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Body string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Whitespace-only bodies never reach the database
		reqData.Body = strings.TrimSpace(reqData.Body)
		if reqData.Body == "" {
			errors["body"] = "Message body is required!"
		} else if len(reqData.Body) > 4000 {
			errors["body"] = "Message must not exceed 4000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSendMessage", reqData)
		return c.Next()
	}
}
