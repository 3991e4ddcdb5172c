package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	// Push token registered by the device; empty until the app registers one.
	PushToken string `gorm:"column:push_token" json:"-"`

	// Relations — preload only when needed
	Orders   []Order   `json:"-"`
	Bookings []Booking `gorm:"foreignKey:UserID" json:"-"`
}
