package controllers

import (
	"moi-backend/pkg/resp"
	"moi-backend/services"
	"moi-backend/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	lines, totalPrice, totalItems, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"lines": lines, "totalPrice": totalPrice, "totalItems": totalItems})
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.AddItem(c.Request.Context(), uid, req.MenuItemID); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, gin.H{"added": req.MenuItemID})
}

// PATCH /cart/items/:id — set exact quantity; qty <= 0 removes the line
func (h *CartController) SetQuantity(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetQuantity(c.Request.Context(), uid, id, req.Qty); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"menuItemId": id, "qty": req.Qty})
}

// POST /cart/items/:id/increase
func (h *CartController) Increase(c *gin.Context) {
	h.adjust(c, +1)
}

// POST /cart/items/:id/decrease
func (h *CartController) Decrease(c *gin.Context) {
	h.adjust(c, -1)
}

func (h *CartController) adjust(c *gin.Context, delta int) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var err error
	if delta > 0 {
		err = h.Svc.IncreaseQuantity(c.Request.Context(), uid, id)
	} else {
		err = h.Svc.DecreaseQuantity(c.Request.Context(), uid, id)
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"menuItemId": id})
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.RemoveItem(c.Request.Context(), uid, id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": id})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	if err := h.Svc.Clear(c.Request.Context(), uid); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
