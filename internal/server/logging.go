package server

import (
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLoggingMiddleware logs HTTP requests with structured logging
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
		}
		if gymID, ok := c.Get("gym_id"); ok {
			args = append(args, "gym_id", gymID)
		}

		if c.Writer.Status() >= 500 {
			logger.Error("HTTP request", args...)
			return
		}
		logger.Info("HTTP request", args...)
	}
}
