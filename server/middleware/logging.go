package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mp/logger"
)

var healthPaths = map[string]bool{
	"/health": true,
	"/ready":  true,
}

// GinRequestLogger logs every request with method, path, status and
// latency. Health-check paths are skipped.
func GinRequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if healthPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := logger.Fields(
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client", c.ClientIP(),
		)
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}
		logByStatus(log.WithContext(c.Request.Context()), fields, status)
	}
}

// logByStatus logs at error for 5xx, warn for 4xx and debug otherwise.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
