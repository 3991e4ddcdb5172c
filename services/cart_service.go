package services

import (
	"context"
	"errors"

	"moi-backend/entity"
	"moi-backend/repository"
	"moi-backend/ws"

	"gorm.io/gorm"
)

// EventPublisher pushes UI-facing events to a user's open connections.
type EventPublisher interface {
	Publish(userID uint, event ws.Event)
}

// CartService owns the cart aggregate: one line per menu item, quantity >= 1,
// totals always recomputed from the lines. State lives in the cart store only.
type CartService struct {
	Store    repository.CartStore
	MenuRepo *repository.MenuRepository
	Events   EventPublisher
}

func NewCartService(store repository.CartStore, menuRepo *repository.MenuRepository, events EventPublisher) *CartService {
	return &CartService{Store: store, MenuRepo: menuRepo, Events: events}
}

func (s *CartService) Lines(ctx context.Context, userID uint) ([]entity.CartLine, error) {
	return s.Store.Load(ctx, userID)
}

// Get returns the lines together with the recomputed totals.
func (s *CartService) Get(ctx context.Context, userID uint) ([]entity.CartLine, int64, int, error) {
	lines, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	price, count := CartTotals(lines)
	return lines, price, count, nil
}

func CartTotals(lines []entity.CartLine) (totalPrice int64, totalItems int) {
	for _, l := range lines {
		totalPrice += l.Total()
		totalItems += l.Qty
	}
	return
}

// AddItem merges: an existing line for the item gets +1, otherwise a new line
// with quantity 1 is appended. Safe to call repeatedly.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID uint) error {
	m, err := s.MenuRepo.Get(menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("menu item not found")
		}
		return err
	}
	if !m.Available {
		return errors.New("menu item not available")
	}

	lines, err := s.Store.Load(ctx, userID)
	if err != nil {
		return err
	}

	merged := false
	for i := range lines {
		if lines[i].MenuItemID == m.ID {
			lines[i].Qty++
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, entity.CartLine{
			MenuItemID: m.ID,
			Name:       m.Name,
			UnitPrice:  m.Price,
			Category:   m.Category,
			Qty:        1,
		})
	}

	if err := s.Store.Save(ctx, userID, lines); err != nil {
		return err
	}
	s.emit(userID, "cart_added", m.Name)
	return nil
}

// RemoveItem deletes the whole line; removing an absent item is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, menuItemID uint) error {
	lines, err := s.Store.Load(ctx, userID)
	if err != nil {
		return err
	}

	removed := ""
	out := lines[:0]
	for _, l := range lines {
		if l.MenuItemID == menuItemID {
			removed = l.Name
			continue
		}
		out = append(out, l)
	}
	if removed == "" {
		return nil
	}

	if err := s.Store.Save(ctx, userID, out); err != nil {
		return err
	}
	s.emit(userID, "cart_removed", removed)
	return nil
}

func (s *CartService) IncreaseQuantity(ctx context.Context, userID, menuItemID uint) error {
	return s.adjust(ctx, userID, menuItemID, +1)
}

// DecreaseQuantity removes the line entirely when it hits zero; a line with
// quantity <= 0 never exists.
func (s *CartService) DecreaseQuantity(ctx context.Context, userID, menuItemID uint) error {
	return s.adjust(ctx, userID, menuItemID, -1)
}

func (s *CartService) adjust(ctx context.Context, userID, menuItemID uint, delta int) error {
	lines, err := s.Store.Load(ctx, userID)
	if err != nil {
		return err
	}

	for i := range lines {
		if lines[i].MenuItemID != menuItemID {
			continue
		}
		lines[i].Qty += delta
		if lines[i].Qty <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		return s.Store.Save(ctx, userID, lines)
	}
	// adjusting an absent line is a no-op
	return nil
}

// SetQuantity sets the exact quantity; n <= 0 behaves like RemoveItem.
func (s *CartService) SetQuantity(ctx context.Context, userID, menuItemID uint, n int) error {
	if n <= 0 {
		return s.RemoveItem(ctx, userID, menuItemID)
	}

	lines, err := s.Store.Load(ctx, userID)
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].MenuItemID == menuItemID {
			lines[i].Qty = n
			return s.Store.Save(ctx, userID, lines)
		}
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if err := s.Store.Clear(ctx, userID); err != nil {
		return err
	}
	s.emit(userID, "cart_cleared", "")
	return nil
}

func (s *CartService) emit(userID uint, eventType, item string) {
	if s.Events == nil {
		return
	}
	var data any
	if item != "" {
		data = map[string]string{"item": item}
	}
	s.Events.Publish(userID, ws.Event{Type: eventType, Data: data})
}
