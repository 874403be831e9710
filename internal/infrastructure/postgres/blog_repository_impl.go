package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
	"github.com/eazydocs/eazydocs-backend/internal/domain/repository"
)

const blogColumns = `b.id, b.title, COALESCE(b.subtitle, ''), b.content, b.author,
	b.tags, COALESCE(b.banner_image, ''), b.slug, b.is_published, b.approved, b.created_at`

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

// Create inserts the post and appends its id to the author's blogs array in
// one transaction. The returned slice is the author's updated blog-id list.
func (r *BlogRepository) Create(ctx context.Context, b *entity.BlogPost) ([]string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO blogs (title, subtitle, content, author, tags, banner_image,
			slug, is_published, approved)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		RETURNING id, created_at
	`, b.Title, b.Subtitle, b.Content, b.Author, b.Tags, b.BannerImage,
		b.Slug, b.IsPublished, b.Approved)
	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, err
	}

	var userBlogs []string
	err = tx.QueryRow(ctx, `
		UPDATE users SET blogs = array_append(blogs, $1) WHERE id = $2
		RETURNING blogs
	`, b.ID, b.Author).Scan(&userBlogs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return userBlogs, nil
}

func scanBlog(row pgx.Row) (*entity.BlogPost, error) {
	b := &entity.BlogPost{}
	err := row.Scan(&b.ID, &b.Title, &b.Subtitle, &b.Content, &b.Author,
		&b.Tags, &b.BannerImage, &b.Slug, &b.IsPublished, &b.Approved, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	return scanBlog(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs b WHERE b.id = $1`, id))
}

func (r *BlogRepository) queryWithAuthor(ctx context.Context, where string, args ...any) ([]*entity.BlogWithAuthor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+blogColumns+`, u.name, COALESCE(u.profile_picture, '')
		FROM blogs b
		JOIN users u ON u.id = b.author
		`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.BlogWithAuthor{}
	for rows.Next() {
		b := &entity.BlogWithAuthor{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.Content, &b.Author,
			&b.Tags, &b.BannerImage, &b.Slug, &b.IsPublished, &b.Approved,
			&b.CreatedAt, &b.AuthorName, &b.AuthorPicture); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BlogRepository) GetAll(ctx context.Context) ([]*entity.BlogWithAuthor, error) {
	return r.queryWithAuthor(ctx, `ORDER BY b.created_at DESC`)
}

func (r *BlogRepository) GetByAuthor(ctx context.Context, authorID string) ([]*entity.BlogWithAuthor, error) {
	return r.queryWithAuthor(ctx, `WHERE b.author = $1 ORDER BY b.created_at DESC`, authorID)
}

// Search matches the keyword as a case-insensitive substring across title,
// subtitle, content, tags, and author name. An empty keyword falls back to
// the latest posts, capped at limit; keyword matches share the same cap.
func (r *BlogRepository) Search(ctx context.Context, keyword string, limit int) ([]*entity.BlogWithAuthor, error) {
	if keyword == "" {
		return r.queryWithAuthor(ctx, `ORDER BY b.created_at DESC LIMIT $1`, limit)
	}
	pattern := "%" + keyword + "%"
	return r.queryWithAuthor(ctx, `
		WHERE b.title ILIKE $1
			OR b.subtitle ILIKE $1
			OR b.content ILIKE $1
			OR array_to_string(b.tags, ' ') ILIKE $1
			OR u.name ILIKE $1
		ORDER BY b.created_at DESC LIMIT $2`, pattern, limit)
}

func (r *BlogRepository) SetBannerImage(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `UPDATE blogs SET banner_image = $1 WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post and its id from the author's blogs array in one
// transaction. Ownership is checked by the caller before Delete runs.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var author string
	err = tx.QueryRow(ctx, `DELETE FROM blogs WHERE id = $1 RETURNING author`, id).Scan(&author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET blogs = array_remove(blogs, $1) WHERE id = $2`, id, author); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
