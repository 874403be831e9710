package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eazydocs/eazydocs-backend/internal/container"
	handlers "github.com/eazydocs/eazydocs-backend/internal/interface/http"
	"github.com/eazydocs/eazydocs-backend/internal/interface/middleware"
)

// OTPModule wires the email verification code routes. Both are public and
// tightly rate limited since they trigger outbound mail.
type OTPModule struct {
	Handler *handlers.OTPHandler
}

func NewOTPModule(h *handlers.OTPHandler) *OTPModule {
	return &OTPModule{Handler: h}
}

func (m *OTPModule) Register(rg *gin.RouterGroup) {
	sendLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/otp/send", sendLimiter, m.Handler.Send)
	rg.POST("/otp/verify", verifyLimiter, m.Handler.Verify)
}
