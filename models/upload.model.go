package models

import "gorm.io/gorm"

type Upload struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index" json:"userId"`
	Kind        string `gorm:"type:varchar(20);default:'image'" json:"kind"` // image, attachment
	ObjectName  string `gorm:"not null" json:"objectName"`
	Filename    string `gorm:"not null" json:"filename"`
	URL         string `gorm:"not null" json:"url"`
	Size        int64  `gorm:"default:0" json:"size"`
	ContentType string `gorm:"default:''" json:"contentType"`
}
