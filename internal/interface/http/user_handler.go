package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/internal/application"
	"github.com/eazydocs/eazydocs-backend/pkg/response"
	"github.com/eazydocs/eazydocs-backend/pkg/validation"
)

const pictureFormField = "profile_picture_file"

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// GetAll GET /api/user/all
// Returns safe projections only; credential hashes never leave the server.
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Svc.GetAll(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "error fetching users", err.Error())
		return
	}
	response.Success(c, http.StatusOK, users, "users")
}

// GetByID GET /api/user/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user")
}

// CheckUsername GET /api/user/check-username/:username
func (h *UserHandler) CheckUsername(c *gin.Context) {
	available, err := h.Svc.CheckUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "error checking username", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": available}, "username availability")
}

// Update PUT /api/user/:id (multipart)
// Nested fields (social_links, topics) arrive as JSON-encoded form strings;
// an optional picture file is uploaded to object storage.
func (h *UserHandler) Update(c *gin.Context) {
	in := application.UpdateProfileInput{}
	if v, ok := c.GetPostForm("username"); ok {
		in.Username = &v
	}
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("phone_number"); ok {
		in.PhoneNumber = &v
	}
	if v, ok := c.GetPostForm("tagline"); ok {
		in.Tagline = &v
	}
	if v, ok := c.GetPostForm("bio"); ok {
		in.Bio = &v
	}
	if v, ok := c.GetPostForm("social_links"); ok && v != "" {
		links := map[string]string{}
		if err := json.Unmarshal([]byte(v), &links); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid social_links format", nil)
			return
		}
		in.SocialLinks = links
	}
	if v, ok := c.GetPostForm("topics"); ok && v != "" {
		topics := []string{}
		if err := json.Unmarshal([]byte(v), &topics); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid topics format", nil)
			return
		}
		in.Topics = topics
	}

	file, filename, contentType, err := openUpload(c, pictureFormField)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid picture upload", err.Error())
		return
	}
	if file != nil {
		defer func() { _ = file.Close() }()
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.Param("id"), in, file, filename, contentType)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "failed to update user", err.Error())
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user updated")
}

// Delete DELETE /api/user/:id
// Removes the profile row; identity-provider deletion failure is logged,
// not surfaced.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "failed to delete user", err.Error())
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted")
}

// Upload POST /api/user/upload/:id (multipart)
func (h *UserHandler) Upload(c *gin.Context) {
	file, filename, contentType, err := openUpload(c, pictureFormField)
	if err != nil || file == nil {
		response.Error[any](c, http.StatusBadRequest, "picture file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadProfilePicture(c.Request.Context(), c.Param("id"), file, filename, contentType)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "failed to upload picture", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile_picture": url}, "picture uploaded")
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// ResetPassword POST /api/user/reset-password
// Updates the provider credential first, then the local hash.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrNoProviderIdentity):
			response.Error[any](c, http.StatusBadRequest, "no linked identity provider account", nil)
		default:
			response.Error[any](c, http.StatusBadRequest, "failed to reset password", err.Error())
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password reset")
}

// Search GET /api/user/search?q= (gated)
func (h *UserHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, 10)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", err.Error())
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}

// openUpload returns the opened file for the given form field, or nils when
// the field is absent.
func openUpload(c *gin.Context, field string) (multipart.File, string, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", "", nil
		}
		return nil, "", "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", "", err
	}
	return f, fh.Filename, fh.Header.Get("Content-Type"), nil
}

