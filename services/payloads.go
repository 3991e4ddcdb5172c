package services

import (
	"fmt"
	"strconv"
	"strings"

	"moi-backend/entity"
	"moi-backend/pkg/push"
)

// Payload builders. Pure functions: they only shape the notification, they do
// not resolve recipients or send anything. data.type is the discriminator the
// app routes on: "order" | "order_status" | "booking".

func NewOrderPayload(o *entity.Order) push.Notification {
	return push.Notification{
		Title: "Ny beställning",
		Body:  fmt.Sprintf("%s har lagt en beställning på %s kr", o.CustomerName, formatPrice(o.TotalPrice)),
		Data: map[string]string{
			"type":    "order",
			"orderId": strconv.FormatUint(uint64(o.ID), 10),
		},
		Sound:    true,
		Priority: "high",
	}
}

// Confirmation back to the customer; best effort only.
func OrderReceivedPayload(o *entity.Order) push.Notification {
	return push.Notification{
		Title: "Tack för din beställning!",
		Body:  fmt.Sprintf("Vi har tagit emot din beställning på %s kr.", formatPrice(o.TotalPrice)),
		Data: map[string]string{
			"type":    "order_status",
			"status":  string(entity.OrderPending),
			"orderId": strconv.FormatUint(uint64(o.ID), 10),
		},
		Priority: "normal",
	}
}

func OrderCompletedPayload() push.Notification {
	return push.Notification{
		Title:    "Din beställning är klar!",
		Body:     "Maten är redo. Smaklig måltid!",
		Data:     map[string]string{"type": "order_status", "status": string(entity.OrderCompleted)},
		Sound:    true,
		Priority: "high",
	}
}

func OrderCancelledPayload() push.Notification {
	return push.Notification{
		Title:    "Din beställning har avbrutits",
		Body:     "Kontakta restaurangen om du har frågor.",
		Data:     map[string]string{"type": "order_status", "status": string(entity.OrderCancelled)},
		Sound:    true,
		Priority: "normal",
	}
}

func OrderStatusPayload(status entity.OrderStatus) push.Notification {
	switch status {
	case entity.OrderCompleted:
		return OrderCompletedPayload()
	case entity.OrderCancelled:
		return OrderCancelledPayload()
	default:
		return push.Notification{
			Title:    "Din beställning tillagas",
			Body:     "Köket har börjat med din beställning.",
			Data:     map[string]string{"type": "order_status", "status": string(status)},
			Priority: "normal",
		}
	}
}

func NewBookingPayload(b *entity.Booking) push.Notification {
	return push.Notification{
		Title: "Ny bordsbokning",
		Body:  fmt.Sprintf("%s har bokat bord för %d den %s kl %s", b.Name, b.Guests, b.Date, b.Time),
		Data: map[string]string{
			"type":      "booking",
			"bookingId": strconv.FormatUint(uint64(b.ID), 10),
		},
		Sound:    true,
		Priority: "high",
	}
}

func BookingCancelledPayload(b *entity.Booking) push.Notification {
	return push.Notification{
		Title: "Bokning avbokad",
		Body:  fmt.Sprintf("%s har avbokat sitt bord den %s kl %s", b.Name, b.Date, b.Time),
		Data: map[string]string{
			"type":      "booking",
			"bookingId": strconv.FormatUint(uint64(b.ID), 10),
		},
		Priority: "normal",
	}
}

func BookingUpdatedPayload(b *entity.Booking, changedFields []string) push.Notification {
	return push.Notification{
		Title: "Bokning ändrad",
		Body:  fmt.Sprintf("%s har ändrat sin bokning (%s)", b.Name, strings.Join(changedFields, ", ")),
		Data: map[string]string{
			"type":      "booking",
			"bookingId": strconv.FormatUint(uint64(b.ID), 10),
			"changed":   strings.Join(changedFields, ","),
		},
		Priority: "normal",
	}
}

func BookingConfirmedPayload(b *entity.Booking) push.Notification {
	return push.Notification{
		Title: "Din bokning är bekräftad",
		Body:  fmt.Sprintf("Vi ses den %s kl %s. Välkommen!", b.Date, b.Time),
		Data: map[string]string{
			"type":      "booking",
			"bookingId": strconv.FormatUint(uint64(b.ID), 10),
		},
		Sound:    true,
		Priority: "high",
	}
}

// öre -> "135,00"
func formatPrice(minor int64) string {
	return fmt.Sprintf("%d,%02d", minor/100, minor%100)
}
