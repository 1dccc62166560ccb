package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mp/auth"
	"github.com/kbukum/mp/auth/authctx"
	apperrors "github.com/kbukum/mp/errors"
	"github.com/kbukum/mp/logger"
)

// PrincipalResolver turns a bearer token into a username.
type PrincipalResolver interface {
	ResolveCurrentPrincipal(ctx context.Context, token string) (string, error)
}

// Auth requires an "Authorization: Bearer <token>" header that resolves to
// a registered principal. The username is stored in the request context
// (authctx) and on the Gin context under ContextKeyUsername.
func Auth(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, auth.DetailNotAuthenticated)
			return
		}

		username, err := resolver.ResolveCurrentPrincipal(c.Request.Context(), token)
		if err != nil {
			detail, ok := auth.UnauthorizedDetail(err)
			if !ok {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
				return
			}
			abortUnauthorized(c, detail)
			return
		}

		ctx := authctx.WithPrincipal(c.Request.Context(), username)
		ctx = logger.ContextWithUsername(ctx, username)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextKeyUsername, username)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	appErr := apperrors.Unauthorized(detail)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
