package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

const ctxUserID = "auth.user_id"

// JWTAuth 校验 Bearer 令牌并把用户 ID 放入上下文
func JWTAuth(tokens service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			response.Unauthorized(c, "Missing bearer token.")
			return
		}
		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			response.Unauthorized(c, "Invalid token.")
			return
		}
		c.Set(ctxUserID, claims.UserID())
		c.Next()
	}
}

// UserID 取调用方身份；只信任令牌，不信任请求体
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ctxUserID)
	return id, id != ""
}
