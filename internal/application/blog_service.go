package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
	"github.com/eazydocs/eazydocs-backend/internal/domain/repository"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	// ErrNotBlogAuthor is returned when the caller-supplied author id does
	// not match the post's stored author.
	ErrNotBlogAuthor = errors.New("not the author of this blog")
)

const defaultListLimit = 20

// BlogService handles post creation, listing, search, and deletion.
type BlogService struct {
	Repo      repository.BlogRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

type CreateBlogInput struct {
	Title       string
	Subtitle    string
	Content     string
	Author      string
	Tags        []string
	IsPublished bool
}

// Create inserts the post (slug derived from title + author id) and appends
// its id to the author's blog list; both writes share one transaction. The
// banner, when present, is uploaded after the row exists because the object
// path embeds the post id.
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput, banner io.Reader, filename, contentType string) (*entity.BlogPost, []string, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	b := &entity.BlogPost{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Content:     in.Content,
		Author:      in.Author,
		Tags:        in.Tags,
		Slug:        helpers.BlogSlug(in.Title, in.Author, helpers.SlugTitleMax),
		IsPublished: in.IsPublished,
		Approved:    false,
	}
	userBlogs, err := s.Repo.Create(ctx, b)
	if err != nil {
		return nil, nil, err
	}

	if banner != nil {
		url, err := s.uploadBanner(ctx, b.ID, banner, filename, contentType)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Repo.SetBannerImage(ctx, b.ID, url); err != nil {
			return nil, nil, err
		}
		b.BannerImage = url
	}
	return b, userBlogs, nil
}

// GetAll returns the complete listing; only search results are capped.
func (s *BlogService) GetAll(ctx context.Context) ([]*entity.BlogWithAuthor, error) {
	return s.Repo.GetAll(ctx)
}

func (s *BlogService) GetByAuthor(ctx context.Context, authorID string) ([]*entity.BlogWithAuthor, error) {
	return s.Repo.GetByAuthor(ctx, authorID)
}

func (s *BlogService) Search(ctx context.Context, keyword string) ([]*entity.BlogWithAuthor, error) {
	return s.Repo.Search(ctx, keyword, defaultListLimit)
}

// Delete removes a post only when requesterID matches the stored author.
func (s *BlogService) Delete(ctx context.Context, blogID, requesterID string) error {
	b, err := s.Repo.GetByID(ctx, blogID)
	if err != nil || b == nil {
		return ErrBlogNotFound
	}
	if b.Author != requesterID {
		return ErrNotBlogAuthor
	}
	return s.Repo.Delete(ctx, blogID)
}

func (s *BlogService) uploadBanner(ctx context.Context, blogID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	name := "blog-" + blogID + "-" + time.Now().UTC().Format("20060102150405") + ext
	objectPath := filepath.ToSlash(filepath.Join("blog_banners", name))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}
