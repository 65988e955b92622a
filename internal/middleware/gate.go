package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pack/config"
	"pack/internal/metrics"
	"pack/internal/model"
	"pack/internal/session"
)

// SessionValidator reports whether a token names a live session.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*model.Session, session.Outcome)
}

// Gate keeps browsers without a live session out of protected pages. It only
// proves a session exists; role fit is left to the page.
func Gate(v SessionValidator, cfg config.GateConfig, cookie session.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !isProtected(path, cfg) {
			metrics.GateDecisions.WithLabelValues("pass").Inc()
			c.Next()
			return
		}

		token, _ := c.Cookie(cookie.Name)
		_, outcome := v.Validate(c.Request.Context(), token)
		if outcome == session.OK {
			metrics.GateDecisions.WithLabelValues("allow").Inc()
			c.Next()
			return
		}

		if outcome == session.Expired {
			session.ClearCookie(c, cookie)
		}
		logrus.WithFields(logrus.Fields{
			"path":    path,
			"outcome": outcome,
		}).Debug("gate redirect")
		metrics.GateDecisions.WithLabelValues("redirect").Inc()
		c.Redirect(http.StatusFound, cfg.LoginPath)
		c.Abort()
	}
}

func isProtected(path string, cfg config.GateConfig) bool {
	for _, prefix := range cfg.ExcludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	for _, prefix := range cfg.ProtectedPrefixes {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches whole segments, so /dashboard covers /dashboard/x
// but not /dashboards.
func hasPathPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
