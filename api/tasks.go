package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/mp/errors"
	"github.com/kbukum/mp/server"
	"github.com/kbukum/mp/task"
)

// EnqueueTask publishes the named task and returns its id without waiting.
func EnqueueTask(tasks TaskClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		ar, err := tasks.Delay(c.Request.Context(), name)
		if err != nil {
			if errors.Is(err, task.ErrUnknownTask) {
				server.RespondWithError(c, apperrors.NotFound("Task", name))
				return
			}
			server.RespondWithError(c, apperrors.ServiceUnavailable("task broker").WithCause(err))
			return
		}

		state, err := ar.State(c.Request.Context())
		if err != nil {
			state = task.StatePending
		}
		c.JSON(http.StatusAccepted, gin.H{"task_id": ar.ID, "task": ar.Name, "status": state})
	}
}

// TaskResult reports the stored state of a task. Unknown ids are PENDING.
func TaskResult(tasks TaskClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := tasks.Lookup(c.Request.Context(), c.Param("id"))
		if err != nil {
			server.RespondWithError(c, apperrors.ServiceUnavailable("result backend").WithCause(err))
			return
		}
		server.RespondOK(c, res)
	}
}
