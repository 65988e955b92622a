package route_test

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

	"pack/config"
	"pack/internal/alert"
	"pack/internal/class"
	"pack/internal/login"
	"pack/internal/model"
	"pack/internal/register"
	"pack/internal/route"
	"pack/internal/schoolwork"
	"pack/internal/session"
	"pack/internal/settings"
	"pack/internal/testutils"
)

type noClasses struct{}

func (noClasses) ListForTeacher(context.Context, int) ([]class.Summary, error) { return nil, nil }
func (noClasses) ListForStudent(context.Context, int) ([]class.Summary, error) { return nil, nil }
func (noClasses) Create(context.Context, *model.Class) error { return nil }
func (noClasses) FindByJoinCode(context.Context, string) (*model.Class, error) {
	return nil, class.ErrNotFound
}
func (noClasses) AddMember(context.Context, int, int) error { return nil }

type noSchoolwork struct{}

func (noSchoolwork) ListForStudent(context.Context, int) ([]model.Schoolwork, error) { return nil, nil }
func (noSchoolwork) Create(context.Context, *model.Schoolwork) error { return nil }
func (noSchoolwork) SetCompleted(context.Context, int, int, *time.Time) error {
	return schoolwork.ErrNotFound
}
func (noSchoolwork) Delete(context.Context, int, int) error { return schoolwork.ErrNotFound }

func newServer(t *testing.T) (*gin.Engine, *config.AppConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conf := config.Default()
	users := testutils.NewUserStore()
	sessions := testutils.NewSessionStore()
	resolver := session.NewResolver(sessions, users, conf.Session.CookieName)
	issuer := session.NewIssuer(sessions, users, conf.Session.TTL)

	r := route.SetupRouter(conf, route.Deps{
		Sessions:   sessions,
		Resolver:   resolver,
		Login:      login.NewService(users, issuer, bcrypt.MinCost),
		Register:   register.NewRegisterService(users, issuer, alert.LogAlerter{}, bcrypt.MinCost, class.GenerateJoinCode),
		Settings:   settings.NewService(users, testutils.NewCodeStore(), &testutils.Mailer{}, issuer, conf.Code.From, conf.Code.Length, bcrypt.MinCost),
		Classes:    class.NewClassService(noClasses{}),
		Schoolwork: schoolwork.NewSchoolworkService(noSchoolwork{}),
	})
	return r, conf
}

func send(r *gin.Engine, method, path string, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", name)
	return nil
}

func TestAliceSignsUpAndSeesHerDashboard(t *testing.T) {
	r, conf := newServer(t)
	name := conf.Session.CookieName

	w := send(r, http.MethodPost, "/api/signup", nil,
		`{"username":"alice","email":"alice@example.com","password":"Password1","first_name":"Alice","role":"Student","year_group":10}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := sessionCookie(t, w, name)

	w = send(r, http.MethodGet, "/api/user", first, "")
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Data model.Identity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.NotZero(t, me.Data.UserID)
	assert.Equal(t, "alice", me.Data.Username)
	assert.Equal(t, model.RoleStudent, me.Data.Role)

	w = send(r, http.MethodGet, "/dashboard/student", first, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hi Alice")

	w = send(r, http.MethodGet, "/dashboard/teacher", first, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/student", w.Header().Get("Location"))

	// a second login ends the first session
	w = send(r, http.MethodPost, "/api/login", nil, `{"username":"alice","password":"Password1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	second := sessionCookie(t, w, name)
	assert.NotEqual(t, first.Value, second.Value)

	w = send(r, http.MethodGet, "/api/user", first, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = send(r, http.MethodGet, "/dashboard", first, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = send(r, http.MethodPost, "/api/logout", second, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = send(r, http.MethodGet, "/api/user", second, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateLeavesPublicPathsAlone(t *testing.T) {
	r, _ := newServer(t)

	for _, path := range []string{"/login", "/signup", "/healthz", "/metrics"} {
		w := send(r, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := send(r, http.MethodGet, "/settings", nil, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = send(r, http.MethodGet, "/swagger/index.html", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSAllowsCredentials(t *testing.T) {
	r, conf := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", conf.Server.AllowedOrigins[0])
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, conf.Server.AllowedOrigins[0], w.Header().Get("Access-Control-Allow-Origin"))
}
