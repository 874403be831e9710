package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/internal/application"
	"github.com/eazydocs/eazydocs-backend/pkg/response"
	"github.com/eazydocs/eazydocs-backend/pkg/validation"
)

type OTPHandler struct {
	Svc    *application.OTPService
	Logger *logrus.Logger
}

func NewOTPHandler(svc *application.OTPService, logger *logrus.Logger) *OTPHandler {
	return &OTPHandler{Svc: svc, Logger: logger}
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,otp"`
}

// Send POST /api/otp/send
func (h *OTPHandler) Send(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Send(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrMailDelivery):
			response.Error[any](c, http.StatusInternalServerError, "error sending otp", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "error sending otp", err.Error())
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "otp sent successfully")
}

// Verify POST /api/otp/verify
func (h *OTPHandler) Verify(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Verify(c.Request.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, application.ErrOTPExpired):
			response.Error[any](c, http.StatusBadRequest, "otp expired or not found", nil)
		case errors.Is(err, application.ErrOTPMismatch):
			response.Error[any](c, http.StatusBadRequest, "invalid otp", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "error verifying otp", err.Error())
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified successfully")
}
