package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	NameFr      string `gorm:"default:''" json:"nameFr"`
	Description string `gorm:"type:text;default:''" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`
}

type Product struct {
	gorm.Model
	CategoryID  uint           `gorm:"index" json:"categoryId"`
	Name        string         `gorm:"not null" json:"name"`
	NameFr      string         `gorm:"default:''" json:"nameFr"`
	Description string         `gorm:"type:text;default:''" json:"description"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int            `gorm:"default:0" json:"stock"`
	ImageURL    string         `gorm:"default:''" json:"imageUrl"`
	Active      bool           `gorm:"default:true" json:"active"`
	Attributes  datatypes.JSON `json:"attributes"` // Free-form specs (size, color, weight)

	// Relations
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
