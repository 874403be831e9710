package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eazydocs/eazydocs-backend/internal/container"
	handlers "github.com/eazydocs/eazydocs-backend/internal/interface/http"
	"github.com/eazydocs/eazydocs-backend/internal/interface/middleware"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

// UserModule wires profile routes. Reads are public; mutations and search
// sit behind the auth gate.
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  *helpers.TokenManager
}

func NewUserModule(h *handlers.UserHandler, tokens *helpers.TokenManager) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/user")
	{
		users.GET("/all", m.Handler.GetAll)
		users.GET("/check-username/:username", m.Handler.CheckUsername)
		users.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)
		users.GET("/:id", m.Handler.GetByID)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
		users.POST("/upload/:id", m.Handler.Upload)

		// ES-backed search is the only gated user route.
		auth := users.Group("/")
		auth.Use(middleware.Auth(m.Tokens))
		auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
		{
			auth.GET("/search", m.Handler.Search)
		}
	}
}
