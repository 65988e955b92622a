package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pack/internal/model"
	"pack/internal/session"
	"pack/internal/testutils"
)

var now = time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*session.Resolver, *testutils.SessionStore, *testutils.UserStore, *model.User) {
	t.Helper()
	sessions := testutils.NewSessionStore()
	users := testutils.NewUserStore()
	alice := users.Add(testutils.NewTestUser(testutils.WithUsername("alice"), testutils.WithFirstName("Alice")))
	r := session.NewResolver(sessions, users, "sessionCookie", session.WithClock(func() time.Time { return now }))
	return r, sessions, users, alice
}

func TestResolveValidSession(t *testing.T) {
	r, sessions, _, alice := setup(t)
	sessions.Put(model.Session{Token: "tok", UserID: alice.ID, Expires: now.Add(time.Hour)})

	id, ok := r.Resolve(context.Background(), "tok")

	require.True(t, ok)
	assert.Equal(t, alice.Identity(), id)
}

func TestResolveNotAuthenticated(t *testing.T) {
	tests := []struct {
		name  string
		token string
		seed  func(*testutils.SessionStore, *testutils.UserStore, *model.User)
	}{
		{
			name:  "no cookie",
			token: "",
		},
		{
			name:  "unknown token",
			token: "forged",
		},
		{
			name:  "user row missing",
			token: "orphan",
			seed: func(s *testutils.SessionStore, _ *testutils.UserStore, _ *model.User) {
				s.Put(model.Session{Token: "orphan", UserID: 999, Expires: now.Add(time.Hour)})
			},
		},
		{
			name:  "store error fails closed",
			token: "tok",
			seed: func(s *testutils.SessionStore, _ *testutils.UserStore, u *model.User) {
				s.Put(model.Session{Token: "tok", UserID: u.ID, Expires: now.Add(time.Hour)})
				s.FindErr = errors.New("connection refused")
			},
		},
		{
			name:  "user lookup error fails closed",
			token: "tok",
			seed: func(s *testutils.SessionStore, users *testutils.UserStore, u *model.User) {
				s.Put(model.Session{Token: "tok", UserID: u.ID, Expires: now.Add(time.Hour)})
				users.FindErr = errors.New("timeout")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sessions, users, alice := setup(t)
			if tt.seed != nil {
				tt.seed(sessions, users, alice)
			}

			id, ok := r.Resolve(context.Background(), tt.token)

			assert.False(t, ok)
			assert.Nil(t, id)
		})
	}
}

func TestResolveNoCookieSkipsStore(t *testing.T) {
	r, sessions, _, _ := setup(t)

	_, ok := r.Resolve(context.Background(), "")

	assert.False(t, ok)
	assert.Zero(t, sessions.Total())
}

func TestResolveExpiredDeletesRow(t *testing.T) {
	r, sessions, _, alice := setup(t)
	sessions.Put(model.Session{Token: "old", UserID: alice.ID, Expires: now.Add(-time.Second)})

	_, ok := r.Resolve(context.Background(), "old")

	assert.False(t, ok)
	assert.False(t, sessions.Has("old"))
	_, err := sessions.Find(context.Background(), "old")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestResolveExpiryBoundary(t *testing.T) {
	r, sessions, _, alice := setup(t)
	sessions.Put(model.Session{Token: "edge", UserID: alice.ID, Expires: now})

	_, ok := r.Resolve(context.Background(), "edge")

	assert.True(t, ok, "a session expiring exactly now is still valid")
	assert.True(t, sessions.Has("edge"))
}

func TestResolveExpiredTwiceIsIdempotent(t *testing.T) {
	r, sessions, _, alice := setup(t)
	sessions.Put(model.Session{Token: "old", UserID: alice.ID, Expires: now.Add(-time.Minute)})

	_, first := r.Resolve(context.Background(), "old")
	_, second := r.Resolve(context.Background(), "old")

	assert.False(t, first)
	assert.False(t, second)
	assert.Equal(t, 1, sessions.Count("DeleteByToken"))
}

func TestResolveExpiredDeleteFailureStillUnauthenticated(t *testing.T) {
	r, sessions, _, alice := setup(t)
	sessions.Put(model.Session{Token: "old", UserID: alice.ID, Expires: now.Add(-time.Minute)})
	sessions.DeleteErr = errors.New("read only")

	_, ok := r.Resolve(context.Background(), "old")

	assert.False(t, ok)
}

func TestValidateDoesNotReadUsers(t *testing.T) {
	r, sessions, users, alice := setup(t)
	sessions.Put(model.Session{Token: "tok", UserID: alice.ID, Expires: now.Add(time.Hour)})

	s, outcome := r.Validate(context.Background(), "tok")

	assert.Equal(t, session.OK, outcome)
	assert.Equal(t, alice.ID, s.UserID)
	assert.Zero(t, users.Count("FindByID"))
}

func TestFromRequest(t *testing.T) {
	r, sessions, _, alice := setup(t)
	sessions.Put(model.Session{Token: "tok", UserID: alice.ID, Expires: now.Add(time.Hour)})

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "sessionCookie", Value: "tok"})
	id, ok := r.FromRequest(req)
	require.True(t, ok)
	assert.Equal(t, "alice", id.Username)

	bare := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	_, ok = r.FromRequest(bare)
	assert.False(t, ok)
}
