package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage        string    `gorm:"default:''" json:"profileImage"`
	Name                string    `gorm:"default:''" json:"name"`
	Email               string    `gorm:"unique;not null" json:"email"`
	Mobile              string    `gorm:"default:''" json:"mobile"`
	Role                string    `gorm:"default:'USER'" json:"role"` // USER, ADMIN
	Password            string    `gorm:"not null" json:"-"`
	LastLogin           time.Time `gorm:"default:NULL" json:"lastLogin"`
	FailedLoginAttempts int       `gorm:"default:0" json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `gorm:"default:false" json:"-"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `gorm:"default:false" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
