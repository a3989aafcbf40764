package handler

import (
	"github.com/gin-gonic/gin"

	"profguide/backend/internal/api/middleware"
	"profguide/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// JWT 中间件未注入时写入 401 响应并返回 false，调用方应直接 return。
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, "Authentication required")
		return 0, false
	}
	return id, true
}

// MustGetEmail 从 Gin 上下文中安全提取 Token 中的邮箱
func MustGetEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextEmail)
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "Authentication required")
		return "", false
	}
	return s, true
}
