package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eazydocs/eazydocs-backend/internal/container"
	handlers "github.com/eazydocs/eazydocs-backend/internal/interface/http"
	"github.com/eazydocs/eazydocs-backend/internal/interface/middleware"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

// AuthModule wires signup/login and the gated session endpoints.
// Public: POST /api/auth/signup, POST /api/auth/login
// Gated:  GET /api/auth/me, GET /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  *helpers.TokenManager
}

func NewAuthModule(h *handlers.AuthHandler, tokens *helpers.TokenManager) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("/logout", m.Handler.Logout)
	}
}
