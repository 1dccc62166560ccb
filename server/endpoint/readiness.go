package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mp/component"
)

// Readiness aggregates component health. Any unhealthy component makes the
// service not ready (503); a degraded one is reported but still ready.
func Readiness(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ready"
		httpStatus := http.StatusOK
		var components []component.Health

		if checker != nil {
			components = checker(c.Request.Context())
			for _, ch := range components {
				switch ch.Status {
				case component.StatusUnhealthy:
					status = "not_ready"
					httpStatus = http.StatusServiceUnavailable
				case component.StatusDegraded:
					if status == "ready" {
						status = "degraded"
					}
				}
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}
