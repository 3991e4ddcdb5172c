package controllers

import (
	"strconv"

	"moi-backend/pkg/resp"

	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(v), true
}
