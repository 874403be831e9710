package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordCookie(t *testing.T, fn func(c *gin.Context)) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestCookieManager_SetSessionDev(t *testing.T) {
	m := NewCookieManager("", false)
	exp := time.Now().Add(time.Hour)

	ck := recordCookie(t, func(c *gin.Context) { m.SetSession(c, "tok", exp) })
	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.False(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.InDelta(t, 3600, ck.MaxAge, 5)
}

func TestCookieManager_SetSessionProduction(t *testing.T) {
	m := NewCookieManager("eazydocs.io", true)

	ck := recordCookie(t, func(c *gin.Context) { m.SetSession(c, "tok", time.Now().Add(time.Hour)) })
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
	assert.Equal(t, "eazydocs.io", ck.Domain)
}

func TestCookieManager_SetSessionPastExpiryDeletes(t *testing.T) {
	m := NewCookieManager("", false)

	// An already-expired token must delete the cookie rather than emit a
	// session cookie (max-age 0 would be dropped from the header).
	ck := recordCookie(t, func(c *gin.Context) { m.SetSession(c, "tok", time.Now().Add(-time.Minute)) })
	assert.Negative(t, ck.MaxAge)
}

func TestCookieManager_ClearSession(t *testing.T) {
	m := NewCookieManager("", false)

	ck := recordCookie(t, func(c *gin.Context) { m.ClearSession(c) })
	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
}
