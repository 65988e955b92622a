package me_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pack/internal/me"
	"pack/internal/model"
	"pack/internal/session"
	"pack/internal/testutils"
)

func TestGetCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := testutils.NewSessionStore()
	users := testutils.NewUserStore()
	created := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	bob := users.Add(testutils.NewTestUser(
		testutils.WithUsername("bob"),
		testutils.WithEmail("bob@example.com"),
		testutils.WithFirstName("Bob"),
		testutils.WithRole(model.RoleTeacher),
	))
	bob.CreatedAt = created
	users.Add(bob)
	sessions.Put(model.Session{Token: "tok", UserID: bob.ID, Expires: time.Now().Add(time.Hour)})

	r := gin.New()
	me.RegisterRoutes(r.Group("/api"), session.NewResolver(sessions, users, "sessionCookie"))

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "sessionCookie", Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":100,"message":"success","data":{
		"user_id":`+strconv.Itoa(bob.ID)+`,"username":"bob","email":"bob@example.com",
		"first_name":"Bob","role":"Teacher","created_at":"2026-09-01T08:00:00Z"}}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	anon := httptest.NewRecorder()
	r.ServeHTTP(anon, httptest.NewRequest(http.MethodGet, "/api/user", nil))
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
	assert.JSONEq(t, `{"code":3,"error":"User not signed in"}`, anon.Body.String())
}
