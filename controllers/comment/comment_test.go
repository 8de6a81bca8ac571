package commentController

import (
	"encoding/json"
	"fmt"
	"io"
	"marche/database"
	"marche/middleware"
	"marche/models"
	commentValidators "marche/validators/comment"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func newCommentApp(userId uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", userId)
		return c.Next()
	})

	app.Get("/product/:id/comments", ListComments)
	app.Post("/product/:id/comment", commentValidators.CreateComment(), CreateComment)
	app.Post("/comment/:id/reply", commentValidators.ReplyComment(), ReplyComment)
	app.Patch("/comment/:id", commentValidators.EditComment(), EditComment)
	app.Delete("/comment/:id", DeleteComment)
	app.Post("/comment/:id/vote", commentValidators.Vote(), VoteComment)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: models.RoleUser, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	category := models.Category{Name: "Pantry", Active: true}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{CategoryID: category.ID, Name: "Olive Oil", Price: 12.5, Stock: 10, Active: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedComment(t *testing.T, db *gorm.DB, productId, userId uint, parentId *uint) models.Comment {
	t.Helper()
	cm := models.Comment{
		ProductID: productId,
		UserID:    userId,
		ParentID:  parentId,
		Content:   "nice product",
		Status:    models.CommentPublished,
	}
	require.NoError(t, db.Create(&cm).Error)
	return cm
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestVoteUpsertKeepsOneRowPerUser(t *testing.T) {
	db := setupTestDB(t)
	author := seedUser(t, db, "Kim", "kim@example.com")
	voter := seedUser(t, db, "Leo", "leo@example.com")
	product := seedProduct(t, db)
	cm := seedComment(t, db, product.ID, author.ID, nil)

	app := newCommentApp(voter.ID)
	path := fmt.Sprintf("/comment/%d/vote", cm.ID)

	code := doJSON(t, app, "POST", path, `{"kind":"upvote"}`)
	assert.Equal(t, fiber.StatusOK, code)

	var refreshed models.Comment
	require.NoError(t, db.First(&refreshed, cm.ID).Error)
	assert.Equal(t, 1, refreshed.Upvotes)
	assert.Equal(t, 0, refreshed.Downvotes)

	// Changing the vote overwrites the stored row instead of adding one
	code = doJSON(t, app, "POST", path, `{"kind":"downvote"}`)
	assert.Equal(t, fiber.StatusOK, code)

	var rows int64
	db.Model(&models.CommentVote{}).Where("comment_id = ?", cm.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)

	require.NoError(t, db.First(&refreshed, cm.ID).Error)
	assert.Equal(t, 0, refreshed.Upvotes)
	assert.Equal(t, 1, refreshed.Downvotes)

	// Repeating the same vote is a no-op on the counters
	code = doJSON(t, app, "POST", path, `{"kind":"downvote"}`)
	assert.Equal(t, fiber.StatusOK, code)

	require.NoError(t, db.First(&refreshed, cm.ID).Error)
	assert.Equal(t, 0, refreshed.Upvotes)
	assert.Equal(t, 1, refreshed.Downvotes)
}

func TestVoteCountersTrackDistinctVoters(t *testing.T) {
	db := setupTestDB(t)
	author := seedUser(t, db, "Mia", "mia@example.com")
	product := seedProduct(t, db)
	cm := seedComment(t, db, product.ID, author.ID, nil)

	for i := 0; i < 3; i++ {
		voter := seedUser(t, db, fmt.Sprintf("Voter%d", i), fmt.Sprintf("voter%d@example.com", i))
		app := newCommentApp(voter.ID)
		kind := `{"kind":"upvote"}`
		if i == 2 {
			kind = `{"kind":"downvote"}`
		}
		code := doJSON(t, app, "POST", fmt.Sprintf("/comment/%d/vote", cm.ID), kind)
		assert.Equal(t, fiber.StatusOK, code)
	}

	var refreshed models.Comment
	require.NoError(t, db.First(&refreshed, cm.ID).Error)
	assert.Equal(t, 2, refreshed.Upvotes)
	assert.Equal(t, 1, refreshed.Downvotes)
}

func TestReplyToReplyIsRejected(t *testing.T) {
	db := setupTestDB(t)
	author := seedUser(t, db, "Nina", "nina@example.com")
	product := seedProduct(t, db)
	root := seedComment(t, db, product.ID, author.ID, nil)
	reply := seedComment(t, db, product.ID, author.ID, &root.ID)

	app := newCommentApp(author.ID)

	code := doJSON(t, app, "POST", fmt.Sprintf("/comment/%d/reply", reply.ID), `{"content":"nested"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	// Replying to the root still works
	code = doJSON(t, app, "POST", fmt.Sprintf("/comment/%d/reply", root.ID), `{"content":"fair point"}`)
	assert.Equal(t, fiber.StatusCreated, code)
}

func TestEditAndDeleteAreAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	author := seedUser(t, db, "Omar", "omar@example.com")
	other := seedUser(t, db, "Pia", "pia@example.com")
	product := seedProduct(t, db)
	cm := seedComment(t, db, product.ID, author.ID, nil)

	strangerApp := newCommentApp(other.ID)
	authorApp := newCommentApp(author.ID)
	path := fmt.Sprintf("/comment/%d", cm.ID)

	code := doJSON(t, strangerApp, "PATCH", path, `{"content":"hijacked"}`)
	assert.Equal(t, fiber.StatusForbidden, code)

	code = doJSON(t, strangerApp, "DELETE", path, "")
	assert.Equal(t, fiber.StatusForbidden, code)

	code = doJSON(t, authorApp, "PATCH", path, `{"content":"edited by me"}`)
	assert.Equal(t, fiber.StatusOK, code)

	var refreshed models.Comment
	require.NoError(t, db.First(&refreshed, cm.ID).Error)
	assert.Equal(t, "edited by me", refreshed.Content)

	code = doJSON(t, authorApp, "DELETE", path, "")
	assert.Equal(t, fiber.StatusOK, code)

	require.NoError(t, db.First(&refreshed, cm.ID).Error)
	assert.Equal(t, models.CommentDeleted, refreshed.Status)
}

func TestListCommentsIsPubliclyReadable(t *testing.T) {
	db := setupTestDB(t)
	author := seedUser(t, db, "Remy", "remy@example.com")
	voter := seedUser(t, db, "Sasha", "sasha@example.com")
	product := seedProduct(t, db)
	cm := seedComment(t, db, product.ID, author.ID, nil)

	voterApp := newCommentApp(voter.ID)
	code := doJSON(t, voterApp, "POST", fmt.Sprintf("/comment/%d/vote", cm.ID), `{"kind":"upvote"}`)
	require.Equal(t, fiber.StatusOK, code)

	type listedComment struct {
		ID       uint   `json:"ID"`
		UserVote string `json:"userVote"`
	}
	fetch := func(app *fiber.App) []listedComment {
		req := httptest.NewRequest("GET", fmt.Sprintf("/product/%d/comments", product.ID), nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var envelope struct {
			Status bool            `json:"status"`
			Data   []listedComment `json:"data"`
		}
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &envelope))
		return envelope.Data
	}

	// No Authorization header, no stub auth: an anonymous shopper can read
	anonApp := fiber.New()
	anonApp.Get("/product/:id/comments", middleware.OptionalJWTMiddleware, ListComments)

	listed := fetch(anonApp)
	require.Len(t, listed, 1)
	assert.Equal(t, cm.ID, listed[0].ID)
	assert.Empty(t, listed[0].UserVote)

	// A signed-in voter still sees their own vote
	listed = fetch(voterApp)
	require.Len(t, listed, 1)
	assert.Equal(t, models.VoteUp, listed[0].UserVote)
}

func TestDeletedCommentsLeaveTheTree(t *testing.T) {
	db := setupTestDB(t)
	author := seedUser(t, db, "Quinn", "quinn@example.com")
	product := seedProduct(t, db)
	kept := seedComment(t, db, product.ID, author.ID, nil)
	gone := seedComment(t, db, product.ID, author.ID, nil)

	app := newCommentApp(author.ID)
	code := doJSON(t, app, "DELETE", fmt.Sprintf("/comment/%d", gone.ID), "")
	assert.Equal(t, fiber.StatusOK, code)

	// Only published comments are listed
	var published []models.Comment
	require.NoError(t, db.Where("product_id = ? AND status = ?", product.ID, models.CommentPublished).
		Find(&published).Error)
	require.Len(t, published, 1)
	assert.Equal(t, kept.ID, published[0].ID)
}
