package repository

import (
	"context"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
)

// BlogRepository defines the interface for blog-related database operations.
//
// Create and Delete also maintain the author's denormalized blog-id list;
// both writes run in a single transaction so the list and the posts table
// cannot diverge.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.BlogPost) (userBlogs []string, err error)
	GetByID(ctx context.Context, id string) (*entity.BlogPost, error)
	GetAll(ctx context.Context) ([]*entity.BlogWithAuthor, error)
	GetByAuthor(ctx context.Context, authorID string) ([]*entity.BlogWithAuthor, error)
	Search(ctx context.Context, keyword string, limit int) ([]*entity.BlogWithAuthor, error)
	SetBannerImage(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}
