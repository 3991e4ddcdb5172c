package entity

// CartLine lives in the cart cache, never in the relational store.
// It carries the menu item fields captured when the line was added;
// checkout copies them into OrderItem rows.
type CartLine struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Category   string `json:"category"`
	Qty        int    `json:"qty"`
}

func (l CartLine) Total() int64 {
	return l.UnitPrice * int64(l.Qty)
}
