package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

func newUserFixture() (*UserService, *fakeUserRepo, *fakeProvider) {
	repo := newFakeUserRepo()
	provider := &fakeProvider{validPassword: "correct-horse"}
	svc := &UserService{
		Repo:     repo,
		Provider: provider,
		Tokens:   helpers.NewTokenManager("test-secret", time.Hour),
	}
	return svc, repo, provider
}

func TestUserService_Signup(t *testing.T) {
	svc, repo, provider := newUserFixture()

	u, err := svc.Signup(context.Background(), SignupInput{
		Email:    "alice@example.com",
		Password: "correct-horse",
		Name:     "Alice",
		Username: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, provider.signUpCalls)
	assert.Equal(t, "prov-alice@example.com", u.ProviderID)
	assert.NotEmpty(t, u.ID)

	// Stored credential is a bcrypt hash, never the plaintext.
	stored := repo.users["alice@example.com"]
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "correct-horse"))
}

func TestUserService_SignupProviderFailure(t *testing.T) {
	svc, repo, provider := newUserFixture()
	provider.signUpErr = assert.AnError

	_, err := svc.Signup(context.Background(), SignupInput{
		Email: "bob@example.com", Password: "x", Name: "Bob",
	})
	assert.Error(t, err)
	// No local row without a provider account.
	assert.Empty(t, repo.users)
}

func TestUserService_LoginWithEmail(t *testing.T) {
	svc, repo, _ := newUserFixture()
	repo.add(&entity.User{Email: "alice@example.com", Username: "alice", Name: "Alice"})

	u, token, exp, err := svc.Login(context.Background(), "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.Tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
}

func TestUserService_LoginWithUsername(t *testing.T) {
	svc, repo, provider := newUserFixture()
	repo.add(&entity.User{Email: "alice@example.com", Username: "alice", Name: "Alice"})

	u, _, _, err := svc.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	// The provider sees the resolved email, not the username.
	require.Len(t, provider.signInCalls, 1)
	assert.Equal(t, "alice@example.com", provider.signInCalls[0])
}

func TestUserService_LoginUnknownUsernameSkipsProvider(t *testing.T) {
	svc, _, provider := newUserFixture()

	_, _, _, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, provider.signInCalls)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc, repo, _ := newUserFixture()
	repo.add(&entity.User{Email: "alice@example.com", Username: "alice"})

	_, _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_CheckUsername(t *testing.T) {
	svc, repo, _ := newUserFixture()
	repo.add(&entity.User{Email: "alice@example.com", Username: "alice"})

	available, err := svc.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.CheckUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUserService_GetAllOmitsCredentials(t *testing.T) {
	svc, repo, _ := newUserFixture()
	repo.add(&entity.User{Email: "alice@example.com", Username: "alice", Password: "hash", ProviderID: "prov-1"})

	profiles, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "alice@example.com", profiles[0].Email)
	// PublicProfile has no password or provider fields at all; the blog list
	// serializes as [] rather than null.
	assert.NotNil(t, profiles[0].Blogs)
}

func TestUserService_UpdateProfilePartial(t *testing.T) {
	svc, repo, _ := newUserFixture()
	u := repo.add(&entity.User{Email: "alice@example.com", Username: "alice", Name: "Alice", Bio: "old bio"})

	newName := "Alice Cooper"
	got, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{
		Name:   &newName,
		Topics: []string{"go", "databases"},
	}, nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", got.Name)
	assert.Equal(t, []string{"go", "databases"}, got.Topics)
	// Unset fields are untouched.
	assert.Equal(t, "old bio", got.Bio)
	assert.Equal(t, "alice", got.Username)
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, provider := newUserFixture()
	u := repo.add(&entity.User{Email: "alice@example.com", ProviderID: "prov-1"})

	require.NoError(t, svc.Delete(context.Background(), u.ID))
	assert.Empty(t, repo.users)
	assert.Equal(t, []string{"prov-1"}, provider.deleteCalls)
}

func TestUserService_DeleteSurvivesProviderFailure(t *testing.T) {
	svc, repo, provider := newUserFixture()
	provider.deleteErr = assert.AnError
	u := repo.add(&entity.User{Email: "alice@example.com", ProviderID: "prov-1"})

	// Local deletion wins even when the provider call fails.
	require.NoError(t, svc.Delete(context.Background(), u.ID))
	assert.Empty(t, repo.users)
}

func TestUserService_ResetPassword(t *testing.T) {
	svc, repo, provider := newUserFixture()
	u := repo.add(&entity.User{Email: "alice@example.com", ProviderID: "prov-1", Password: "old-hash"})

	require.NoError(t, svc.ResetPassword(context.Background(), "alice@example.com", "new-password"))
	assert.Equal(t, []string{"prov-1"}, provider.updateCalls)
	assert.NotEqual(t, "old-hash", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "new-password"))
}

func TestUserService_ResetPasswordNoProviderIdentity(t *testing.T) {
	svc, repo, provider := newUserFixture()
	repo.add(&entity.User{Email: "alice@example.com"})

	err := svc.ResetPassword(context.Background(), "alice@example.com", "new-password")
	assert.ErrorIs(t, err, ErrNoProviderIdentity)
	assert.Empty(t, provider.updateCalls)
}

func TestUserService_ResetPasswordUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture()

	err := svc.ResetPassword(context.Background(), "nobody@example.com", "x")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
