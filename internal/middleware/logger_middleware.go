package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LoggerMiddleware 日志中间件
type LoggerMiddleware struct {
	logger *logrus.Logger
}

// NewLoggerMiddleware 创建日志中间件实例
func NewLoggerMiddleware() *LoggerMiddleware {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &LoggerMiddleware{
		logger: logger,
	}
}

// RequestLogger 请求日志中间件
// 记录每个请求的方法、路径、状态码和耗时
// 租户和请求ID由前置中间件写入上下文后一并记录
func (m *LoggerMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// 处理请求
		c.Next()

		// 记录响应信息
		latency := time.Since(start)
		status := c.Writer.Status()
		errorMessage := c.Errors.String()

		fields := logrus.Fields{
			"timestamp":     time.Now().Format(time.RFC3339),
			"status":        status,
			"latency":       latency,
			"client_ip":     c.ClientIP(),
			"method":        c.Request.Method,
			"path":          path,
			"raw_query":     raw,
			"user_agent":    c.Request.UserAgent(),
			"error_message": errorMessage,
		}
		if requestID, ok := c.Get("request_id"); ok {
			fields["request_id"] = requestID
		}
		if tenantID, ok := c.Get("tenant_id"); ok {
			fields["tenant_id"] = tenantID
		}

		m.logger.WithFields(fields).Info("HTTP Response")
	}
}
