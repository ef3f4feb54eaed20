// Package middleware 提供 Gin 通用中间件（日志、trace、panic recover、CORS、指标）
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wyfcoding/atlasvision/pkg/contextx"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/metrics"
)

// RequestIDKey gin context key for request ID
const RequestIDKey = "request_id"

// TraceIDKey gin context key for trace ID
const TraceIDKey = "trace_id"

// GinLoggingMiddleware Gin 日志中间件，生成 request_id/trace_id 并注入请求 context
func GinLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		traceID := c.GetHeader("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Set(TraceIDKey, traceID)

		// 下游 handler 通过 c.Request.Context() 取到 trace 信息
		ctx := contextx.WithTraceID(c.Request.Context(), traceID)
		ctx = contextx.WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		clientIP := c.ClientIP()

		logging.Info(ctx, "HTTP request started",
			"method", method,
			"path", path,
			"client_ip", clientIP,
		)

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		responseSize := c.Writer.Size()

		logging.Info(ctx, "HTTP request completed",
			"method", method,
			"path", path,
			"status_code", statusCode,
			"response_size", responseSize,
			"duration", duration,
		)
	}
}

// GinRecoveryMiddleware Gin panic 恢复中间件
func GinRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID, _ := c.Get(RequestIDKey)

				logging.Error(c.Request.Context(), "HTTP request panicked",
					"request_id", requestID,
					"panic", err,
				)

				c.AbortWithStatusJSON(500, gin.H{
					"error":      "Internal server error",
					"request_id": requestID,
				})
			}
		}()
		c.Next()
	}
}

// GinCORSMiddleware Gin CORS 中间件
func GinCORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Trace-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// GinMetricsMiddleware Gin 指标中间件，记录请求计数、耗时与响应大小
func GinMetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.RecordHTTPRequest(time.Since(start).Seconds(), int64(c.Writer.Size()))
	}
}
