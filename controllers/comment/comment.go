package commentController

import (
	"fmt"
	"log"
	"marche/database"
	"marche/kafka"
	"marche/middleware"
	"marche/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recountVotes recomputes the comment's counters from the vote table. The
// displayed numbers are always what the store computed, never incremented
// client-side.
func recountVotes(db *gorm.DB, commentId uint) error {
	var up, down int64
	if err := db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND kind = ?", commentId, models.VoteUp).
		Count(&up).Error; err != nil {
		return err
	}
	if err := db.Model(&models.CommentVote{}).
		Where("comment_id = ? AND kind = ?", commentId, models.VoteDown).
		Count(&down).Error; err != nil {
		return err
	}
	return db.Model(&models.Comment{}).Where("id = ?", commentId).
		Updates(map[string]interface{}{"upvotes": up, "downvotes": down}).Error
}

// List Comments for a product as a two-level tree. Reading is public;
// signed-in callers additionally get their own vote on each comment.
// GET /product/:id/comments
func ListComments(c *fiber.Ctx) error {
	userId, authenticated := c.Locals("userId").(uint)
	productId := c.Params("id")

	db := database.Database.Db

	var comments []models.Comment
	if err := db.Where("product_id = ? AND status = ?", productId, models.CommentPublished).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	tree := BuildCommentTree(comments)

	// Resolve author names and the caller's votes
	authorNames := make(map[uint]string)
	commentIds := make([]uint, 0, len(comments))
	for _, cm := range comments {
		authorNames[cm.UserID] = ""
		commentIds = append(commentIds, cm.ID)
	}

	ids := make([]uint, 0, len(authorNames))
	for id := range authorNames {
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		var users []models.User
		db.Select("id, name").Where("id IN ?", ids).Find(&users)
		for _, u := range users {
			authorNames[u.ID] = u.Name
		}
	}

	userVotes := make(map[uint]string)
	if authenticated && len(commentIds) > 0 {
		var votes []models.CommentVote
		db.Where("comment_id IN ? AND user_id = ?", commentIds, userId).Find(&votes)
		for _, v := range votes {
			userVotes[v.CommentID] = v.Kind
		}
	}

	for _, root := range tree {
		root.UserName = authorNames[root.UserID]
		root.UserVote = userVotes[root.ID]
		for _, reply := range root.Replies {
			reply.UserName = authorNames[reply.UserID]
			reply.UserVote = userVotes[reply.ID]
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched!", tree)
}

// Create root Comment (optionally with a rating)
// POST /product/:id/comment
func CreateComment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	productId := c.Params("id")

	reqData, ok := c.Locals("validatedCreateComment").(*struct {
		Content string `json:"content"`
		Rating  *int   `json:"rating"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var product models.Product
	if err := db.Where("id = ? AND active = true", productId).First(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	comment := models.Comment{
		ProductID: product.ID,
		UserID:    userId,
		Content:   reqData.Content,
		Rating:    reqData.Rating,
		Status:    models.CommentPublished,
	}

	if err := db.Create(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit comment!", nil)
	}

	kafka.Publish(kafka.TopicComments, fmt.Sprintf("product-%d", product.ID), comment)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment submitted!", comment)
}

// Reply to a root Comment (depth is capped at one level of replies)
// POST /comment/:id/reply
func ReplyComment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	parentId := c.Params("id")

	reqData, ok := c.Locals("validatedReplyComment").(*struct {
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var parent models.Comment
	if err := db.Where("id = ? AND status = ?", parentId, models.CommentPublished).
		First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	if parent.ParentID != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Replies to replies are not supported!", nil)
	}

	reply := models.Comment{
		ProductID: parent.ProductID,
		UserID:    userId,
		ParentID:  &parent.ID,
		Content:   reqData.Content,
		Status:    models.CommentPublished,
	}

	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit reply!", nil)
	}

	kafka.Publish(kafka.TopicComments, fmt.Sprintf("product-%d", parent.ProductID), reply)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply submitted!", reply)
}

// Edit Comment (author only)
// PATCH /comment/:id
func EditComment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	commentId := c.Params("id")

	reqData, ok := c.Locals("validatedEditComment").(*struct {
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var comment models.Comment
	if err := db.Where("id = ? AND status = ?", commentId, models.CommentPublished).
		First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	if comment.UserID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own comments!", nil)
	}

	if err := db.Model(&comment).Update("content", reqData.Content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment updated!", comment)
}

// Delete Comment (author only, soft delete)
// DELETE /comment/:id
func DeleteComment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	commentId := c.Params("id")

	db := database.Database.Db

	var comment models.Comment
	if err := db.Where("id = ? AND status <> ?", commentId, models.CommentDeleted).
		First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	if comment.UserID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own comments!", nil)
	}

	if err := db.Model(&comment).Update("status", models.CommentDeleted).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment deleted!", nil)
}

// Vote on a Comment. One vote row per (comment, user); a later vote with a
// different kind overwrites the stored one.
// POST /comment/:id/vote
func VoteComment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	commentId := c.Params("id")

	reqData, ok := c.Locals("validatedVote").(*struct {
		Kind string `json:"kind"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var comment models.Comment
	if err := db.Where("id = ? AND status = ?", commentId, models.CommentPublished).
		First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	vote := models.CommentVote{
		CommentID: comment.ID,
		UserID:    userId,
		Kind:      reqData.Kind,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
	}).Create(&vote).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record vote!", nil)
	}

	if err := recountVotes(db, comment.ID); err != nil {
		log.Printf("Failed to recount votes for comment %d: %v", comment.ID, err)
	}

	if err := db.First(&comment, comment.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote recorded!", comment)
}
