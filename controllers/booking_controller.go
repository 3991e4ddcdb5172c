package controllers

import (
	"errors"

	"moi-backend/pkg/resp"
	"moi-backend/services"
	"moi-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookingController struct{ Svc *services.BookingService }

func NewBookingController(s *services.BookingService) *BookingController {
	return &BookingController{Svc: s}
}

// POST /bookings
func (h *BookingController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req services.CreateBookingIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	b, err := h.Svc.Create(c.Request.Context(), &uid, &req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, b)
}

// GET /bookings — the caller's bookings, newest first
func (h *BookingController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	bookings, err := h.Svc.ListForUser(uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, bookings)
}

// POST /bookings/:id/cancel
func (h *BookingController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.Svc.Cancel(c.Request.Context(), uid, utils.CurrentRole(c), id)
	if err != nil {
		bookingError(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": id})
}

// PATCH /bookings/:id — sparse patch of an editable booking
func (h *BookingController) Update(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patch services.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	b, err := h.Svc.Update(c.Request.Context(), uid, utils.CurrentRole(c), id, &patch)
	if err != nil {
		bookingError(c, err)
		return
	}
	resp.OK(c, b)
}

func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, "booking can no longer be changed")
	case errors.Is(err, services.ErrEmptyPatch):
		resp.BadRequest(c, "nothing to update")
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "booking not found")
	default:
		resp.BadRequest(c, err.Error())
	}
}
