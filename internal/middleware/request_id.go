package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID的响应头
const RequestIDHeader = "X-Request-ID"

// RequestID 请求ID中间件
// 为每个请求生成唯一标识并写入上下文和响应头，
// 客户端传入的请求ID原样沿用，便于跨服务追踪
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
