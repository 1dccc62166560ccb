package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mp/auth"
	"github.com/kbukum/mp/item"
	"github.com/kbukum/mp/server/middleware"
	"github.com/kbukum/mp/task"
)

// TaskClient enqueues tasks and reads their results. *task.Client
// implements it.
type TaskClient interface {
	Delay(ctx context.Context, name string) (*task.AsyncResult, error)
	Lookup(ctx context.Context, id string) (*task.Result, error)
}

// Deps are the services the handlers call. Tasks may be nil, in which case
// the /tasks routes are not registered.
type Deps struct {
	Auth       *auth.Service
	Authorizer middleware.PrincipalResolver
	Items      *item.Service
	Tasks      TaskClient
}

// Register binds every route on r.
func Register(r gin.IRouter, deps Deps) {
	r.GET("/", Root())

	r.POST("/register", RegisterUser(deps.Auth))
	r.POST("/login", Login(deps.Auth))

	protected := r.Group("/", middleware.Auth(deps.Authorizer))
	protected.GET("/users/me", CurrentUser())

	items := protected.Group("/items")
	// Collection routes answer with and without the trailing slash so
	// neither form gets a redirect.
	for _, root := range []string{"", "/"} {
		items.POST(root, CreateItem(deps.Items))
		items.GET(root, ListItems(deps.Items))
	}
	items.GET("/:id", GetItem(deps.Items))
	items.PUT("/:id", UpdateItem(deps.Items))
	items.DELETE("/:id", DeleteItem(deps.Items))

	if deps.Tasks != nil {
		tasks := protected.Group("/tasks")
		tasks.POST("/:name", EnqueueTask(deps.Tasks))
		tasks.GET("/result/:id", TaskResult(deps.Tasks))
	}
}

// Root returns the welcome message.
func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to mp API"})
	}
}
