package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
	"github.com/eazydocs/eazydocs-backend/internal/domain/repository"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

const userColumns = `id, email, COALESCE(username, ''), password, name,
	COALESCE(phone_number, ''), COALESCE(profile_picture, ''),
	COALESCE(tagline, ''), COALESCE(bio, ''), social_links, topics, blogs,
	role, verified, COALESCE(provider_id, ''), created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.Name,
		&u.PhoneNumber, &u.ProfilePicture, &u.Tagline, &u.Bio,
		&u.SocialLinks, &u.Topics, &u.Blogs,
		&u.Role, &u.Verified, &u.ProviderID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// normalizeForWrite replaces nil collections with empty ones. pgx encodes a
// nil slice or map as SQL NULL, which the NOT NULL array and jsonb columns
// reject.
func normalizeForWrite(u *entity.User) {
	if u.Topics == nil {
		u.Topics = []string{}
	}
	if u.Blogs == nil {
		u.Blogs = []string{}
	}
	if u.SocialLinks == nil {
		u.SocialLinks = map[string]string{}
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Role == "" {
		u.Role = "user"
	}
	normalizeForWrite(u)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password, name, phone_number, profile_picture,
			tagline, bio, social_links, topics, blogs, role, verified, provider_id)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''),
			NULLIF($7, ''), NULLIF($8, ''), $9, $10, '{}', $11, $12, NULLIF($13, ''))
		RETURNING id, created_at
	`, u.Email, u.Username, u.Password, u.Name, u.PhoneNumber, u.ProfilePicture,
		u.Tagline, u.Bio, u.SocialLinks, u.Topics, u.Role, u.Verified, u.ProviderID)

	return row.Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	normalizeForWrite(u)
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = NULLIF($1, ''), name = $2, phone_number = NULLIF($3, ''),
			profile_picture = NULLIF($4, ''), tagline = NULLIF($5, ''),
			bio = NULLIF($6, ''), social_links = $7, topics = $8
		WHERE id = $9
	`, u.Username, u.Name, u.PhoneNumber, u.ProfilePicture, u.Tagline, u.Bio,
		u.SocialLinks, u.Topics, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *UserRepository) SetVerified(ctx context.Context, email string) error {
	res, err := r.pool.Exec(ctx, `UPDATE users SET verified = TRUE WHERE email = $1`, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
