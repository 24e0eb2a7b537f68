package middleware

import (
	"strconv"
	"time"

	"clinicdesk/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger stores a request-scoped logger under "logger" and logs each completed request.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := base.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", getClientIP(c)),
		)
		c.Set("logger", logger)
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{zap.Int("status", status), zap.Duration("latency", time.Since(start))}
		if status >= 500 {
			logger.Error("Request failed", fields...)
			return
		}
		logger.Info("Request handled", fields...)
	}
}

// HTTPMetrics records count and latency per route template.
func HTTPMetrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
