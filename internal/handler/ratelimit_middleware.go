package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit 返回按路由类别限流的中间件。
// 超出配额时响应 429，附带当前窗口的重置时间，客户端应退避而非立即重试。
func (a *API) RateLimit(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		verdict := a.limiter.Check(category, clientIP(c), time.Now())
		if !verdict.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "too many requests",
				"resetAt": verdict.ResetAt.UTC().Format(time.RFC3339),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
