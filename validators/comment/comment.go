package commentValidators

import (
	"marche/middleware"
	"marche/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string `json:"content"`
			Rating  *int   `json:"rating"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Content = strings.TrimSpace(reqData.Content)
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		} else if len(reqData.Content) > 5000 {
			errors["content"] = "Content must not exceed 5000 characters!"
		}

		if reqData.Rating != nil && (*reqData.Rating < 1 || *reqData.Rating > 5) {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateComment", reqData)
		return c.Next()
	}
}

func ReplyComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string `json:"content"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Content = strings.TrimSpace(reqData.Content)
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		} else if len(reqData.Content) > 5000 {
			errors["content"] = "Content must not exceed 5000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReplyComment", reqData)
		return c.Next()
	}
}

func EditComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string `json:"content"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Content = strings.TrimSpace(reqData.Content)
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		} else if len(reqData.Content) > 5000 {
			errors["content"] = "Content must not exceed 5000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEditComment", reqData)
		return c.Next()
	}
}

func Vote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Kind string `json:"kind"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Kind = strings.ToLower(strings.TrimSpace(reqData.Kind))
		if reqData.Kind != models.VoteUp && reqData.Kind != models.VoteDown {
			errors["kind"] = "Invalid vote! Allowed: upvote, downvote"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVote", reqData)
		return c.Next()
	}
}
