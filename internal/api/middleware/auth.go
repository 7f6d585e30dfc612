package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/agrifeed/pkg/response"
)

// UserIDKey gin context 里当前用户 ID 的键
const UserIDKey = "userID"

// Auth 校验外部认证服务签发的 Bearer JWT，把 sub 放进 context。
// required 为 false 时允许匿名通过（信息流的匿名读取）。
func Auth(secret string, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			if required {
				response.Unauthorized(c, "missing credentials")
				c.Abort()
				return
			}
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(raw, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Unauthorized(c, "invalid token subject")
			c.Abort()
			return
		}
		c.Set(UserIDKey, sub)
		c.Next()
	}
}

// CurrentUserID 取当前用户 ID，匿名时返回空串
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
