package services

import (
	"context"

	"moi-backend/entity"
	"moi-backend/ws"

	"gorm.io/gorm"
)

// pending -> processing -> completed, with a cancel edge from both live
// states. completed and cancelled are terminal.
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderPending:    {entity.OrderProcessing, entity.OrderCancelled},
	entity.OrderProcessing: {entity.OrderCompleted, entity.OrderCancelled},
}

func orderCanTransition(from, to entity.OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus is the admin transition. The state machine is re-validated
// here, not just in the UI, and the write is guarded on the expected current
// status so two racing admins cannot both win.
//
// The customer notification runs after the write and is isolated from it: a
// failed push never surfaces as a failed status change.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, to entity.OrderStatus) error {
	if !to.Valid() {
		return ErrInvalidTransition
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return err
	}
	if !orderCanTransition(o.Status, to) {
		return ErrInvalidTransition
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Notifier.NotifyUser(ctx, o.UserID, OrderStatusPayload(to))

	if s.Events != nil {
		s.Events.Publish(o.UserID, ws.Event{
			Type: "order_status",
			Data: map[string]any{"orderId": o.ID, "status": to},
		})
	}
	return nil
}
