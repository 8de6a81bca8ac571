package commentController

import (
	"marche/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func comment(id uint, parentID *uint) models.Comment {
	return models.Comment{
		Model:    gorm.Model{ID: id},
		ParentID: parentID,
	}
}

func ptr(v uint) *uint { return &v }

func TestBuildCommentTree(t *testing.T) {
	t.Run("replies nest under their parent, never at the root", func(t *testing.T) {
		rows := []models.Comment{
			comment(1, nil),
			comment(2, ptr(1)),
			comment(3, nil),
		}

		tree := BuildCommentTree(rows)

		assert.Len(t, tree, 2)
		assert.Equal(t, uint(1), tree[0].ID)
		assert.Equal(t, uint(3), tree[1].ID)
		assert.Len(t, tree[0].Replies, 1)
		assert.Equal(t, uint(2), tree[0].Replies[0].ID)
		assert.Empty(t, tree[1].Replies)
	})

	t.Run("every row appears exactly once", func(t *testing.T) {
		rows := []models.Comment{
			comment(1, nil),
			comment(2, ptr(1)),
			comment(3, ptr(1)),
			comment(4, nil),
			comment(5, ptr(4)),
		}

		tree := BuildCommentTree(rows)

		seen := make(map[uint]int)
		for _, root := range tree {
			seen[root.ID]++
			for _, reply := range root.Replies {
				seen[reply.ID]++
			}
		}
		assert.Len(t, seen, 5)
		for id, count := range seen {
			assert.Equalf(t, 1, count, "comment %d placed %d times", id, count)
		}
	})

	t.Run("replies to unknown parents are dropped", func(t *testing.T) {
		rows := []models.Comment{
			comment(1, nil),
			comment(5, ptr(99)),
		}

		tree := BuildCommentTree(rows)

		assert.Len(t, tree, 1)
		assert.Equal(t, uint(1), tree[0].ID)
		assert.Empty(t, tree[0].Replies)
	})

	t.Run("depth never exceeds two levels", func(t *testing.T) {
		rows := []models.Comment{
			comment(1, nil),
			comment(2, ptr(1)),
			comment(3, ptr(2)),
		}

		tree := BuildCommentTree(rows)

		for _, root := range tree {
			for _, reply := range root.Replies {
				assert.Empty(t, reply.Replies)
			}
		}
	})

	t.Run("input order is preserved", func(t *testing.T) {
		rows := []models.Comment{
			comment(9, nil),
			comment(3, nil),
			comment(7, ptr(9)),
			comment(4, ptr(9)),
		}

		tree := BuildCommentTree(rows)

		assert.Equal(t, uint(9), tree[0].ID)
		assert.Equal(t, uint(3), tree[1].ID)
		assert.Equal(t, uint(7), tree[0].Replies[0].ID)
		assert.Equal(t, uint(4), tree[0].Replies[1].ID)
	})

	t.Run("same input builds the same tree", func(t *testing.T) {
		rows := []models.Comment{
			comment(1, nil),
			comment(2, ptr(1)),
			comment(3, nil),
		}

		first := BuildCommentTree(rows)
		second := BuildCommentTree(rows)

		assert.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
			assert.Equal(t, len(first[i].Replies), len(second[i].Replies))
		}
	})

	t.Run("empty input yields an empty tree", func(t *testing.T) {
		assert.Empty(t, BuildCommentTree(nil))
	})
}
