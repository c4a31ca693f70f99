package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/thesis-hub/internal/service/account"
)

// 上下文键
const (
	ContextUserID = "user_id"
	ContextRoles  = "roles"
)

// TokenParser 解析访问令牌
type TokenParser interface {
	Parse(token string) (*account.Claims, error)
}

// AuthMiddleware 识别调用方
// 提供有效的 Bearer Token 时写入 user_id 和 roles；缺失或无效时直接放行
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if tokens != nil && strings.HasPrefix(authHeader, "Bearer ") {
			claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
			if err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextRoles, claims.Roles)
			}
		}
		c.Next()
	}
}
