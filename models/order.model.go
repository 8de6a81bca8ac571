package models

import "gorm.io/gorm"

// Order status enum
const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

type Order struct {
	gorm.Model
	UserID          uint    `gorm:"not null;index" json:"userId"`
	Total           float64 `gorm:"not null" json:"total"`
	Status          string  `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	ShippingAddress string  `gorm:"type:text;default:''" json:"shippingAddress"`

	// Relations
	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"orderId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unitPrice"`

	// Relations
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
