package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/internal/application"
	"github.com/eazydocs/eazydocs-backend/pkg/response"
	"github.com/eazydocs/eazydocs-backend/pkg/validation"
)

const bannerFormField = "banner_image"

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

// Create POST /api/blogs/ (multipart)
// tags arrive as a JSON-encoded form string; isPublished as "true"/"false".
// Responds 201 with the post and the author's updated blog-id list.
func (h *BlogHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	content := c.PostForm("content")
	author := c.PostForm("author")
	if title == "" || content == "" || author == "" {
		response.Error[any](c, http.StatusBadRequest, "title, content and author are required", nil)
		return
	}

	tags := []string{}
	if v := c.PostForm("tags"); v != "" {
		if err := json.Unmarshal([]byte(v), &tags); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid tags format", nil)
			return
		}
	}

	banner, filename, contentType, err := openUpload(c, bannerFormField)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid banner upload", err.Error())
		return
	}
	if banner != nil {
		defer func() { _ = banner.Close() }()
	}

	in := application.CreateBlogInput{
		Title:       title,
		Subtitle:    c.PostForm("subtitle"),
		Content:     content,
		Author:      author,
		Tags:        tags,
		IsPublished: c.PostForm("isPublished") == "true",
	}
	blog, userBlogs, err := h.Svc.Create(c.Request.Context(), in, banner, filename, contentType)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to create blog", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"blog": blog, "userBlogs": userBlogs}, "blog created")
}

// GetAll GET /api/blogs/all
func (h *BlogHandler) GetAll(c *gin.Context) {
	blogs, err := h.Svc.GetAll(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "error fetching blogs", err.Error())
		return
	}
	response.Success(c, http.StatusOK, blogs, "blogs")
}

// GetByAuthor GET /api/blogs/:authorId
func (h *BlogHandler) GetByAuthor(c *gin.Context) {
	blogs, err := h.Svc.GetByAuthor(c.Request.Context(), c.Param("authorId"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "error fetching blogs", err.Error())
		return
	}
	response.Success(c, http.StatusOK, blogs, "blogs")
}

// Search GET /api/blogs/search/:keyword
// Case-insensitive substring match across title, subtitle, content, tags,
// and author name; an empty keyword returns the latest posts.
func (h *BlogHandler) Search(c *gin.Context) {
	blogs, err := h.Svc.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", err.Error())
		return
	}
	response.Success(c, http.StatusOK, blogs, "search results")
}

type deleteBlogRequest struct {
	AuthorID string `json:"authorId" binding:"required"`
}

// Delete DELETE /api/blogs/:blogId
// Succeeds only when the supplied author id matches the stored author.
func (h *BlogHandler) Delete(c *gin.Context) {
	var req deleteBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.Delete(c.Request.Context(), c.Param("blogId"), req.AuthorID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrBlogNotFound):
			response.Error[any](c, http.StatusNotFound, "blog not found", nil)
		case errors.Is(err, application.ErrNotBlogAuthor):
			response.Error[any](c, http.StatusForbidden, "you are not authorized to delete this blog", nil)
		default:
			response.Error[any](c, http.StatusBadRequest, "failed to delete blog", err.Error())
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "blog deleted")
}
