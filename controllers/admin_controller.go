package controllers

import (
	"errors"

	"moi-backend/entity"
	"moi-backend/pkg/resp"
	"moi-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController is the back-office surface: all orders and bookings plus
// the admin-only status transitions. Routes are gated on role=admin.
type AdminController struct {
	Orders   *services.OrderService
	Bookings *services.BookingService
}

func NewAdminController(orders *services.OrderService, bookings *services.BookingService) *AdminController {
	return &AdminController{Orders: orders, Bookings: bookings}
}

// GET /admin/orders
func (h *AdminController) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, orders)
}

// PATCH /admin/orders/:id/status
func (h *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status entity.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	err := h.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTransition):
			resp.Conflict(c, "invalid status transition")
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"orderId": id, "status": req.Status})
}

// GET /admin/bookings
func (h *AdminController) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, bookings)
}

// POST /admin/bookings/:id/confirm
func (h *AdminController) ConfirmBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Bookings.Confirm(c.Request.Context(), id); err != nil {
		bookingError(c, err)
		return
	}
	resp.OK(c, gin.H{"bookingId": id, "status": entity.BookingConfirmed})
}

// POST /admin/bookings/:id/complete
func (h *AdminController) CompleteBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Bookings.Complete(c.Request.Context(), id); err != nil {
		bookingError(c, err)
		return
	}
	resp.OK(c, gin.H{"bookingId": id, "status": entity.BookingCompleted})
}
