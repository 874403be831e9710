package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
	"github.com/eazydocs/eazydocs-backend/internal/domain/repository"
	"github.com/eazydocs/eazydocs-backend/internal/infrastructure/identity"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
	"github.com/eazydocs/eazydocs-backend/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoProviderIdentity = errors.New("no linked identity provider account")
)

// Publisher enqueues non-critical notification mail.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService orchestrates profile storage, the external identity provider,
// object storage for pictures, and the user search index.
type UserService struct {
	Repo         repository.UserRepository
	Provider     identity.Provider
	Tokens       *helpers.TokenManager
	GCS          *storage.Client
	GCSBucket    string
	Pub          Publisher
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	MailEnabled  bool
}

type SignupInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Username    string
}

// Signup creates the identity-provider account first, then the profile row
// with a redundant bcrypt copy of the credential. Provider errors pass
// through verbatim.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	providerID, err := s.Provider.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:       in.Email,
		Username:    in.Username,
		Password:    hash,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		ProviderID:  providerID,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.enqueueWelcomeMail(ctx, u)
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Login verifies credentials and issues a session token. A non-email
// identifier is resolved to an email via username lookup first; an unknown
// username short-circuits without calling the provider, with the same
// error as a wrong password.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*entity.User, string, time.Time, error) {
	email := identifier
	if !strings.Contains(identifier, "@") {
		u, err := s.Repo.GetByUsername(ctx, identifier)
		if err != nil || u == nil {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		email = u.Email
	}

	if err := s.Provider.SignInWithPassword(ctx, email, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetAll returns safe projections only; the credential hash never leaves
// the repository layer.
func (s *UserService) GetAll(ctx context.Context) ([]entity.PublicProfile, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PublicProfile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// CheckUsername reports availability: false iff a row with that exact
// username exists.
func (s *UserService) CheckUsername(ctx context.Context, username string) (bool, error) {
	exists, err := s.Repo.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

type UpdateProfileInput struct {
	Username    *string
	Name        *string
	PhoneNumber *string
	Tagline     *string
	Bio         *string
	SocialLinks map[string]string
	Topics      []string
}

// UpdateProfile applies the provided fields and, when picture is non-nil,
// uploads it to object storage and records the public URL.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput, picture io.Reader, filename, contentType string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.Tagline != nil {
		u.Tagline = *in.Tagline
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.SocialLinks != nil {
		u.SocialLinks = in.SocialLinks
	}
	if in.Topics != nil {
		u.Topics = in.Topics
	}
	if picture != nil {
		url, err := s.uploadPicture(ctx, userID, picture, filename, contentType)
		if err != nil {
			return nil, err
		}
		u.ProfilePicture = url
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// UploadProfilePicture uploads the picture and updates the profile URL.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return "", ErrUserNotFound
	}
	url, err := s.uploadPicture(ctx, userID, r, filename, contentType)
	if err != nil {
		return "", err
	}
	u.ProfilePicture = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	_ = s.indexUser(ctx, u)
	return url, nil
}

// Delete removes the profile row and the provider account. A provider
// failure is logged but does not fail the request; the divergence is
// repaired manually (documented limitation).
func (s *UserService) Delete(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	if u.ProviderID != "" {
		if err := s.Provider.DeleteUser(ctx, u.ProviderID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).
				Warn("identity provider deletion failed; local row already removed")
		}
	}
	s.deindexUser(ctx, userID)
	return nil
}

// ResetPassword updates the provider credential and the local hash. It
// fails when the email has no linked provider identity, and the local hash
// is only written after the provider accepted the new credential.
func (s *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if u.ProviderID == "" {
		return ErrNoProviderIdentity
	}
	if err := s.Provider.UpdatePassword(ctx, u.ProviderID, newPassword); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.SetPassword(ctx, u.ID, hash)
}

func (s *UserService) uploadPicture(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profile_pics", userID, uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

func (s *UserService) enqueueWelcomeMail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Welcome to Eazy Docs",
		Text:    "Hi " + u.Name + ", your account is ready. Verify your email to start publishing.",
		HTML:    "<p>Hi <b>" + u.Name + "</b>, your account is ready. Verify your email to start publishing.</p>",
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue welcome email")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":              u.ID,
		"email":           u.Email,
		"username":        u.Username,
		"name":            u.Name,
		"tagline":         u.Tagline,
		"topics":          u.Topics,
		"profile_picture": u.ProfilePicture,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *UserService) deindexUser(ctx context.Context, userID string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// SearchUsers performs a multi_match query over the users index.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "name", "tagline", "topics"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
