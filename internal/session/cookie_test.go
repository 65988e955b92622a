package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pack/internal/session"
)

var cookieCfg = session.CookieConfig{Name: "sessionCookie", TTL: 7 * 24 * time.Hour}

func TestSetCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	session.SetCookie(c, cookieCfg, "tok")

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "sessionCookie=tok")
	assert.Contains(t, header, "Path=/")
	assert.Contains(t, header, "Max-Age=604800")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "SameSite=Lax")
}

func TestClearCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	session.ClearCookie(c, cookieCfg)

	cookies := (&http.Response{Header: w.Header()}).Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "sessionCookie", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0, "parsed Max-Age=0 reads as negative")
	}
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
