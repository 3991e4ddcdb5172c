package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"` // preload only for admin views

	Status     OrderStatus `gorm:"type:text;not null;default:pending" json:"status"`
	TotalPrice int64       `json:"totalPrice"`

	// Contact details snapshotted at checkout
	DeliveryAddress string `json:"deliveryAddress"`
	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
	CustomerName    string `json:"customerName"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}
