package services

import (
	"context"
	"log"

	"moi-backend/entity"
	"moi-backend/repository"
	"moi-backend/ws"

	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Cart     *CartService
	Notifier *NotificationService
	Events   EventPublisher
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, cart *CartService, notifier *NotificationService, events EventPublisher) *OrderService {
	return &OrderService{DB: db, Repo: repo, Cart: cart, Notifier: notifier, Events: events}
}

type PlaceOrderIn struct {
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	Email           string `json:"email"`
	Name            string `json:"name" binding:"required"`
}

// PlaceOrder checks out the cart: one order row plus one item row per cart
// line, written in a single transaction. Item rows snapshot name and unit
// price from the cart line so later menu edits never touch order history.
//
// The cart is cleared only after the write succeeds; on any failure it keeps
// its contents so the user can retry. The admin notification runs after the
// commit and can never fail the placement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, in *PlaceOrderIn) (*entity.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	lines, err := s.Cart.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total, _ := CartTotals(lines)

	order := entity.Order{
		UserID:          userID,
		Status:          entity.OrderPending,
		TotalPrice:      total,
		DeliveryAddress: in.DeliveryAddress,
		PhoneNumber:     in.PhoneNumber,
		Email:           in.Email,
		CustomerName:    in.Name,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, l := range lines {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: l.MenuItemID,
				Name:       l.Name,
				UnitPrice:  l.UnitPrice,
				Qty:        l.Qty,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// write confirmed; a failed cache clear must not fail the order
	if err := s.Cart.Clear(ctx, userID); err != nil {
		log.Printf("order %d placed but cart clear failed for user %d: %v", order.ID, userID, err)
	}

	s.Notifier.NotifyAdmins(ctx, NewOrderPayload(&order))
	s.Notifier.NotifyUser(ctx, userID, OrderReceivedPayload(&order))

	if s.Events != nil {
		s.Events.Publish(userID, ws.Event{Type: "order_placed", Data: map[string]any{"orderId": order.ID}})
	}
	return &order, nil
}

// Newest first; the result replaces the client's cached list wholesale.
func (s *OrderService) ListForUser(userID uint) ([]entity.Order, error) {
	return s.Repo.ListOrdersForUser(userID)
}

// Admin view, unfiltered.
func (s *OrderService) ListAll() ([]entity.Order, error) {
	return s.Repo.ListAllOrders()
}

func (s *OrderService) Detail(callerID uint, role string, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if role != "admin" && o.UserID != callerID {
		return nil, ErrForbidden
	}
	return o, nil
}

// Delete removes item rows before the order row, both inside one transaction,
// so a failure can never leave items without their order.
func (s *OrderService) Delete(callerID uint, role string, orderID uint) error {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return err
	}
	if role != "admin" && o.UserID != callerID {
		return ErrForbidden
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteOrderWithItems(tx, o.ID)
	})
}
