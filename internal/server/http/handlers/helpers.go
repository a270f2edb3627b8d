package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fideleatome/loyalty/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated account identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
