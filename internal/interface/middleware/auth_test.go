package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

func authTestRouter(t *testing.T, tokens *helpers.TokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":    c.GetString(CtxUserIDKey),
			"userEmail": c.GetString(CtxUserEmailKey),
		})
	})
	return r
}

func TestAuth_MissingToken(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	r := authTestRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not authenticated")
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	r := authTestRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: "garbage"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuth_ExpiredToken(t *testing.T) {
	issuer := helpers.NewTokenManager("test-secret", -time.Minute)
	token, _, err := issuer.Generate("u1", "a@b.c")
	require.NoError(t, err)

	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	r := authTestRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuth_ValidCookie(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	token, _, err := tokens.Generate("user-1", "alice@example.com")
	require.NoError(t, err)

	r := authTestRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestAuth_BearerFallback(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	token, _, err := tokens.Generate("user-2", "bob@example.com")
	require.NoError(t, err)

	r := authTestRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-2")
}

func TestAuth_CookieWinsOverBearer(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	cookieToken, _, err := tokens.Generate("cookie-user", "cookie@example.com")
	require.NoError(t, err)
	bearerToken, _, err := tokens.Generate("bearer-user", "bearer@example.com")
	require.NoError(t, err)

	r := authTestRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cookie-user")
}
