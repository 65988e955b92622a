package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (cfg CookieConfig) maxAge() int {
	return int(cfg.TTL / time.Second)
}

// SetCookie writes an HttpOnly, SameSite=Lax cookie scoped to /.
func SetCookie(c *gin.Context, cfg CookieConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, token, cfg.maxAge(), "/", "", cfg.Secure, true)
}

// ClearCookie empties the cookie with Max-Age=0.
func ClearCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, "", -1, "/", "", cfg.Secure, true)
}
