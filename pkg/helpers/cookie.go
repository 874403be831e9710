package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie the auth gate reads first.
const SessionCookieName = "token"

// CookieManager writes the session cookie with environment-appropriate
// attributes: SameSite=Lax in development, SameSite=None + Secure in
// production (Secure cookies are only sent over HTTPS).
type CookieManager struct {
	Domain     string
	Production bool
}

func NewCookieManager(domain string, production bool) *CookieManager {
	return &CookieManager{Domain: domain, Production: production}
}

func (m *CookieManager) sameSite() http.SameSite {
	if m.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// SetSession stores the session token as an HTTP-only cookie with max-age
// matching the token expiry.
func (m *CookieManager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookieName, token, maxAgeFrom(exp), "/", m.Domain, m.Production, true)
}

// ClearSession removes the session cookie. The token itself stays valid
// until expiry; there is no server-side revocation list.
func (m *CookieManager) ClearSession(c *gin.Context) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Production, true)
}

// maxAgeFrom converts the expiry to a cookie max-age. A non-positive value
// returns -1 so the cookie is deleted, not turned into a session cookie
// (gin treats max-age 0 as unset).
func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec <= 0 {
		return -1
	}
	return sec
}
