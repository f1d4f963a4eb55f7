package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookiePolicy describes how the credential cookie is written and cleared.
// Production runs cross-site behind TLS, everything else stays same-site.
type CookiePolicy struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

func NewCookiePolicy(name string, production bool) CookiePolicy {
	if production {
		return CookiePolicy{Name: name, Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Name: name, Secure: false, SameSite: http.SameSiteStrictMode}
}

func (p CookiePolicy) Set(c *gin.Context, value string, maxAge time.Duration) {
	c.SetSameSite(p.SameSite)
	c.SetCookie(p.Name, value, int(maxAge.Seconds()), "/", "", p.Secure, true)
}

// Clear expires the cookie with the same attributes it was issued with.
func (p CookiePolicy) Clear(c *gin.Context) {
	c.SetSameSite(p.SameSite)
	c.SetCookie(p.Name, "", -1, "/", "", p.Secure, true)
}
