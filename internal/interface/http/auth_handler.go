package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/internal/application"
	"github.com/eazydocs/eazydocs-backend/internal/interface/middleware"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
	"github.com/eazydocs/eazydocs-backend/pkg/response"
	"github.com/eazydocs/eazydocs-backend/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.UserService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username" binding:"omitempty,username"`
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
// Creates the identity-provider account and the profile row; responds 201
// with the profile sans password. Provider errors answer 401 with the
// provider's message.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
	})
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "signup failed", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, u.Public(), "user created")
}

// Login POST /api/auth/login
// The identifier may be an email or a username. On success the session
// token is set as an HTTP-only cookie with max-age matching its expiry.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, exp, err := h.Svc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		// same message for unknown user and wrong password
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetSession(c, token, exp)
	response.Success(c, http.StatusOK, u.Public(), "login successful")
}

// Me GET /api/auth/me (gated)
// The gate trusts the token claim; this endpoint is where the profile row
// is actually consulted, so a deleted user gets 404 here.
func (h *AuthHandler) Me(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	u, err := h.Svc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "profile")
}

// Logout GET /api/auth/logout (gated)
// Clears the cookie only; the token itself stays valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.ClearSession(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}
