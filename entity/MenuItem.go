package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // minor units (öre)
	Category    string `gorm:"index" json:"category"`
	ImageURL    string `json:"imageUrl"`
	Available   bool   `gorm:"default:true" json:"available"`
}
