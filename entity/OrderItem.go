package entity

import (
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot of a menu item at checkout time.
// Name and UnitPrice are copied from the menu row, so later menu edits
// never change what a historical order shows.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Qty        int    `json:"qty"`
}
