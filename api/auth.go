package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/kbukum/mp/auth"
	"github.com/kbukum/mp/auth/authctx"
	apperrors "github.com/kbukum/mp/errors"
	"github.com/kbukum/mp/server"
	"github.com/kbukum/mp/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=1024"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterUser enrolls a new principal from a JSON body.
func RegisterUser(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			server.RespondWithError(c, apperrors.Validation("request body must be a JSON object"))
			return
		}
		if err := validation.Validate(req); err != nil {
			server.RespondWithError(c, err)
			return
		}

		p, err := svc.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			server.RespondWithError(c, authError(err))
			return
		}
		server.RespondCreated(c, p)
	}
}

// Login exchanges form-encoded credentials for a bearer token.
func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form loginForm
		if err := c.ShouldBindWith(&form, binding.Form); err != nil {
			server.RespondWithError(c, apperrors.Validation("request must be form-encoded"))
			return
		}
		if err := validation.Validate(form); err != nil {
			server.RespondWithError(c, err)
			return
		}

		token, err := svc.Login(c.Request.Context(), form.Username, form.Password)
		if err != nil {
			server.RespondWithError(c, authError(err))
			return
		}
		server.RespondOK(c, token)
	}
}

// CurrentUser returns the principal resolved by the auth middleware.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := authctx.PrincipalOrError(c.Request.Context())
		if err != nil {
			server.RespondWithError(c, apperrors.Unauthorized(auth.DetailNotAuthenticated))
			return
		}
		server.RespondOK(c, auth.Principal{Username: username})
	}
}

// authError maps auth sentinels onto the response envelope. A taken
// username is a 400, not a 409.
func authError(err error) error {
	switch {
	case errors.Is(err, auth.ErrAlreadyExists):
		return apperrors.AlreadyExists("Username").WithStatus(http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidInput):
		return apperrors.InvalidInput("", "username and password are required")
	}
	if detail, ok := auth.UnauthorizedDetail(err); ok {
		return apperrors.Unauthorized(detail)
	}
	return apperrors.Internal(err)
}
