package router

import (
	"time"

	"basix/logger"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, status and latency. Handlers get a request-scoped
// logger through logger.FromContext.
func Logger(l *logger.Logger) gin.HandlerFunc {
	httpLog := l.WithComponent(logger.ComponentHTTP)
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := httpLog.With(
			logger.FieldMethod, c.Request.Method,
			logger.FieldPath, c.Request.URL.Path,
		)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))
		c.Next()

		status := c.Writer.Status()
		args := []any{
			logger.FieldStatusCode, status,
			logger.FieldDuration, time.Since(start).Milliseconds(),
			logger.FieldClientIP, c.ClientIP(),
		}
		switch {
		case status >= 500:
			reqLog.Error("request", args...)
		case status >= 400:
			reqLog.Warn("request", args...)
		default:
			reqLog.Info("request", args...)
		}
	}
}
