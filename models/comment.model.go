package models

import "gorm.io/gorm"

// CommentStatus enum
const (
	CommentPublished = "published"
	CommentPending   = "pending"
	CommentHidden    = "hidden"
	CommentDeleted   = "deleted"
)

// VoteKind enum
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

type Comment struct {
	gorm.Model
	ProductID uint   `gorm:"not null;index" json:"productId"`
	UserID    uint   `gorm:"not null" json:"userId"`
	ParentID  *uint  `gorm:"index" json:"parentId"` // nil for root comments
	Content   string `gorm:"type:text;not null" json:"content"`
	Rating    *int   `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"` // Roots only
	Status    string `gorm:"type:varchar(10);default:'published'" json:"status"`

	// Recomputed from comment_votes after every vote upsert
	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentVote stores one row per (comment, user), overwritten on re-vote
type CommentVote struct {
	gorm.Model
	CommentID uint   `gorm:"not null;uniqueIndex:idx_comment_user" json:"commentId"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_comment_user" json:"userId"`
	Kind      string `gorm:"type:varchar(10);not null" json:"kind"`
}

func (CommentVote) TableName() string {
	return "comment_votes"
}
