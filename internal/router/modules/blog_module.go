package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eazydocs/eazydocs-backend/internal/container"
	handlers "github.com/eazydocs/eazydocs-backend/internal/interface/http"
	"github.com/eazydocs/eazydocs-backend/internal/interface/middleware"
)

// BlogModule wires blog CRUD and search routes.
type BlogModule struct {
	Handler *handlers.BlogHandler
}

func NewBlogModule(h *handlers.BlogHandler) *BlogModule {
	return &BlogModule{Handler: h}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP(), nil)

	blogs := rg.Group("/blogs")
	{
		blogs.POST("/", createLimiter, m.Handler.Create)
		blogs.GET("/all", m.Handler.GetAll)
		blogs.GET("/search/:keyword", m.Handler.Search)
		blogs.GET("/:authorId", m.Handler.GetByAuthor)
		blogs.DELETE("/:blogId", m.Handler.Delete)
	}
}
