package commentRoutes

import (
	controller "marche/controllers/comment"
	"marche/middleware"
	validator "marche/validators/comment"

	"github.com/gofiber/fiber/v2"
)

func SetupCommentRoutes(app *fiber.App) {
	comments := app.Group("/product")

	comments.Get("/:id/comments", middleware.OptionalJWTMiddleware, controller.ListComments)
	comments.Post("/:id/comment", validator.CreateComment(), middleware.JWTMiddleware, controller.CreateComment)

	comment := app.Group("/comment")

	comment.Post("/:id/reply", validator.ReplyComment(), middleware.JWTMiddleware, controller.ReplyComment)
	comment.Patch("/:id", validator.EditComment(), middleware.JWTMiddleware, controller.EditComment)
	comment.Delete("/:id", middleware.JWTMiddleware, controller.DeleteComment)
	comment.Post("/:id/vote", validator.Vote(), middleware.JWTMiddleware, controller.VoteComment)
}
