package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profguide/backend/internal/repository"
	pkgerrors "profguide/backend/pkg/errors"
	"profguide/backend/pkg/jwt"
	"profguide/backend/pkg/response"
)

// 上下文键
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Token
//   - 缺少或格式错误的认证头 → 401
//   - Token 无效或过期 → 403
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Forbidden(c, "Invalid token")
			c.Abort()
			return
		}

		// 将用户信息注入上下文
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// AdminAuth 管理员权限中间件，需挂在 JWTAuth 之后
// 每次请求回查用户表，撤销管理员后立即生效
func AdminAuth(userRepo repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(ContextUserID)
		id, _ := userID.(uint)
		if !ok || id == 0 {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), id)
		if err != nil && !pkgerrors.IsNotFound(err) {
			logger.Error("查询管理员失败", zap.Uint("user_id", id), zap.Error(err))
			response.InternalError(c)
			c.Abort()
			return
		}
		if user == nil || !user.IsAdmin {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
