package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/mp/errors"
	"github.com/kbukum/mp/logger"
)

// RespondWithError writes err as the structured error envelope. Errors that
// are not *apperrors.AppError become a 500 and are logged.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithError(err).Error("Request failed", logger.Fields(
			"path", c.Request.URL.Path,
			"code", string(appErr.Code),
		))
	}
	if appErr.HTTPStatus == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 response with data as the body.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
