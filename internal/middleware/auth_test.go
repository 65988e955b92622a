package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pack/internal/middleware"
	"pack/internal/model"
	"pack/internal/session"
	"pack/internal/testutils"
)

func apiRouter(t *testing.T) (*gin.Engine, *testutils.SessionStore, *testutils.UserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := testutils.NewSessionStore()
	users := testutils.NewUserStore()
	resolver := session.NewResolver(sessions, users, "sessionCookie")

	r := gin.New()
	api := r.Group("/api", middleware.RequireUser(resolver))
	api.GET("/me", func(c *gin.Context) {
		id, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": id.Username})
	})
	api.GET("/teachers-only", middleware.RequireRole(model.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, sessions, users
}

func TestRequireUser(t *testing.T) {
	r, sessions, users := apiRouter(t)
	alice := users.Add(testutils.NewTestUser(testutils.WithUsername("alice")))
	sessions.Put(model.Session{Token: "tok", UserID: alice.ID, Expires: time.Now().Add(time.Hour)})

	w := get(r, "/api/me", "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())

	w = get(r, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":3,"error":"User not signed in"}`, w.Body.String())
}

func TestRequireUserFailuresAreIndistinguishable(t *testing.T) {
	r, sessions, users := apiRouter(t)
	alice := users.Add(testutils.NewTestUser())
	sessions.Put(model.Session{Token: "expired", UserID: alice.ID, Expires: time.Now().Add(-time.Hour)})
	sessions.Put(model.Session{Token: "orphan", UserID: 404, Expires: time.Now().Add(time.Hour)})

	baseline := get(r, "/api/me", "")
	for _, cookie := range []string{"forged", "expired", "orphan"} {
		w := get(r, "/api/me", cookie)
		assert.Equal(t, baseline.Code, w.Code, cookie)
		assert.Equal(t, baseline.Body.String(), w.Body.String(), cookie)
	}
}

func TestRequireRole(t *testing.T) {
	r, sessions, users := apiRouter(t)
	student := users.Add(testutils.NewTestUser(testutils.WithRole(model.RoleStudent)))
	teacher := users.Add(testutils.NewTestUser(testutils.WithRole(model.RoleTeacher)))
	sessions.Put(model.Session{Token: "s", UserID: student.ID, Expires: time.Now().Add(time.Hour)})
	sessions.Put(model.Session{Token: "t", UserID: teacher.ID, Expires: time.Now().Add(time.Hour)})

	assert.Equal(t, http.StatusForbidden, get(r, "/api/teachers-only", "s").Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/api/teachers-only", "t").Code)
}

func TestRequireRoleWithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", middleware.RequireRole(model.RoleStudent), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
