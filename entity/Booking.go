package entity

import (
	"gorm.io/gorm"
)

type Booking struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Date        string `gorm:"not null" json:"date"` // YYYY-MM-DD
	Time        string `gorm:"not null" json:"time"` // HH:MM
	Guests      int    `json:"guests"`
	Message     string `json:"message"`

	Status BookingStatus `gorm:"type:text;not null;default:pending" json:"status"`

	// Nil for walk-in bookings taken over the phone by staff.
	UserID *uint `gorm:"index" json:"userId,omitempty"`
	User   *User `json:"-"`
}
