package login_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pack/internal/login"
	"pack/internal/model"
	"pack/internal/session"
	"pack/internal/testutils"
)

var cookieCfg = session.CookieConfig{Name: "sessionCookie", TTL: 7 * 24 * time.Hour}

type fixture struct {
	router   *gin.Engine
	users    *testutils.UserStore
	sessions *testutils.SessionStore
	resolver *session.Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := testutils.NewUserStore()
	sessions := testutils.NewSessionStore()
	issuer := session.NewIssuer(sessions, users, cookieCfg.TTL)

	r := gin.New()
	login.RegisterRoutes(r.Group("/api"), login.NewService(users, issuer, bcrypt.MinCost), cookieCfg)

	return &fixture{
		router:   r,
		users:    users,
		sessions: sessions,
		resolver: session.NewResolver(sessions, users, cookieCfg.Name),
	}
}

func (f *fixture) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(login.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieCfg.Name {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookie(t *testing.T) {
	f := newFixture(t)
	f.users.Add(testutils.NewTestUser(testutils.WithUsername("alice"), testutils.WithPassword("correct"), testutils.WithRole(model.RoleTeacher)))

	w := f.login(t, "alice", "correct")

	require.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 604800, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	var body struct {
		Data login.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/dashboard/teacher", body.Data.RedirectUrl)
	assert.NotContains(t, w.Body.String(), c.Value, "token is only sent in the cookie")
}

func TestLoginErrorsAreByteIdentical(t *testing.T) {
	f := newFixture(t)
	f.users.Add(testutils.NewTestUser(testutils.WithUsername("alice"), testutils.WithPassword("correct")))

	wrongPassword := f.login(t, "alice", "incorrect")
	unknownUser := f.login(t, "mallory", "incorrect")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.Bytes(), unknownUser.Body.Bytes())
	assert.JSONEq(t, `{"code":3,"error":"Invalid credentials"}`, wrongPassword.Body.String())
	assert.Nil(t, sessionCookie(wrongPassword))
	assert.Nil(t, sessionCookie(unknownUser))
}

func TestSecondLoginInvalidatesFirst(t *testing.T) {
	f := newFixture(t)
	f.users.Add(testutils.NewTestUser(testutils.WithUsername("alice"), testutils.WithPassword("correct")))

	a := sessionCookie(f.login(t, "alice", "correct"))
	b := sessionCookie(f.login(t, "alice", "correct"))
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotEqual(t, a.Value, b.Value)

	_, okA := f.resolver.Resolve(context.Background(), a.Value)
	idB, okB := f.resolver.Resolve(context.Background(), b.Value)

	assert.False(t, okA)
	assert.True(t, okB)
	assert.Equal(t, "alice", idB.Username)
}

func TestLoginBadBody(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
