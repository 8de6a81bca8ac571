package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionStatus enum
const (
	SessionWaiting = "waiting"
	SessionActive  = "active"
	SessionClosed  = "closed"
)

// SessionPriority enum
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// MessageType enum
const (
	MessageText   = "text"
	MessageImage  = "image"
	MessageFile   = "file"
	MessageSystem = "system"
)

type ChatSession struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index" json:"userId"`
	AdminID  uint   `gorm:"default:0;index" json:"adminId"` // 0 while unassigned; set implies status != waiting
	Status   string `gorm:"type:varchar(10);default:'waiting'" json:"status"`
	Priority string `gorm:"type:varchar(10);default:'normal'" json:"priority"`
	Subject  string `gorm:"default:'General Support'" json:"subject"`

	ClosedAt *time.Time `json:"closedAt"`

	// Snapshot fields maintained by the chat scheduler, not by request handlers
	UnreadCount   int  `gorm:"default:0" json:"unreadCount"`
	LastMessageID uint `gorm:"default:0" json:"lastMessageId"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Admin *User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

type ChatMessage struct {
	gorm.Model
	SessionID uint   `gorm:"not null;index" json:"sessionId"`
	SenderID  uint   `gorm:"not null" json:"senderId"`
	Body      string `gorm:"type:text;not null" json:"body"`
	Type      string `gorm:"type:varchar(10);default:'text'" json:"type"`
	FileURL   string `gorm:"default:''" json:"fileUrl"`

	// Set at most once, only by the party that is not the sender
	ReadAt *time.Time `json:"readAt"`

	// Relations
	Session ChatSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
