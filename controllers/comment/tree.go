package commentController

import "marche/models"

// CommentNode is a comment with its direct replies attached. Replies never
// carry replies of their own: the thread depth is capped at two levels.
type CommentNode struct {
	models.Comment
	UserName string         `json:"userName"`
	UserVote string         `json:"userVote,omitempty"`
	Replies  []*CommentNode `json:"replies"`
}

// BuildCommentTree reconstructs the two-level reply tree from a flat result
// set. Every row gets a node with an empty replies list; rows with a parent
// present in the set are appended to that parent's replies, rows without a
// parent become roots. A reply whose parent is absent from the set (filtered
// out upstream, e.g. by status) is dropped. Input order is preserved for
// both roots and replies.
func BuildCommentTree(rows []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(rows))
	for i := range rows {
		nodes[rows[i].ID] = &CommentNode{
			Comment: rows[i],
			Replies: []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0, len(rows))
	for i := range rows {
		node := nodes[rows[i].ID]
		if rows[i].ParentID != nil {
			if parent, ok := nodes[*rows[i].ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
			}
			continue
		}
		roots = append(roots, node)
	}

	return roots
}
