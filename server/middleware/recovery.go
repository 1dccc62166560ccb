package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/mp/errors"
	"github.com/kbukum/mp/logger"
)

// Recovery returns a Gin middleware that recovers from panics, logs the
// stack and answers with a generic 500.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithContext(c.Request.Context()).Error("Panic recovered", logger.Fields(
					"error", fmt.Sprintf("%v", rec),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				))
				c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Internal(nil).ToResponse())
			}
		}()
		c.Next()
	}
}
