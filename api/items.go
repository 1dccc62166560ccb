package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/mp/database/query"
	apperrors "github.com/kbukum/mp/errors"
	"github.com/kbukum/mp/item"
	"github.com/kbukum/mp/server"
	"github.com/kbukum/mp/validation"
)

func CreateItem(svc *item.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in item.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			server.RespondWithError(c, apperrors.Validation("request body must be a JSON object"))
			return
		}
		it, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, it)
	}
}

// ListItems accepts search, sort, page and page_size query parameters,
// plus field filters such as name=eq.widget.
func ListItems(svc *item.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := query.Parse(c.Request.URL.Query(), item.ListConfig)
		res, err := svc.List(c.Request.Context(), params)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, res)
	}
}

func GetItem(svc *item.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID("id", c.Param("id"))
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		it, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, it)
	}
}

// UpdateItem applies a partial update: absent fields keep their value.
func UpdateItem(svc *item.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID("id", c.Param("id"))
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		var in item.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			server.RespondWithError(c, apperrors.Validation("request body must be a JSON object"))
			return
		}
		it, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, it)
	}
}

func DeleteItem(svc *item.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID("id", c.Param("id"))
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, gin.H{"ok": true})
	}
}
