package login

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pack/internal/session"
	"pack/internal/testutils"
	"pack/pkg/response"
)

func newService(users *testutils.UserStore, sessions *testutils.SessionStore) *Service {
	issuer := session.NewIssuer(sessions, users, 7*24*time.Hour)
	return NewService(users, issuer, bcrypt.MinCost)
}

func TestLoginService_validateRequest(t *testing.T) {
	s := &Service{}

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"valid", LoginRequest{Username: "alice", Password: "x"}, false},
		{"empty username", LoginRequest{Password: "x"}, true},
		{"blank username", LoginRequest{Username: "  ", Password: "x"}, true},
		{"empty password", LoginRequest{Username: "alice"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.validateRequest(tt.req)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, response.InvalidParameter, err.Code)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	users := testutils.NewUserStore()
	sessions := testutils.NewSessionStore()
	alice := users.Add(testutils.NewTestUser(testutils.WithUsername("alice"), testutils.WithPassword("correct")))
	s := newService(users, sessions)

	sess, id, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "correct"})

	require.Nil(t, err)
	assert.Equal(t, alice.ID, sess.UserID)
	assert.Equal(t, "alice", id.Username)
	assert.True(t, sessions.Has(sess.Token))
}

func TestLoginFailures(t *testing.T) {
	users := testutils.NewUserStore()
	sessions := testutils.NewSessionStore()
	users.Add(testutils.NewTestUser(testutils.WithUsername("alice"), testutils.WithPassword("correct")))
	s := newService(users, sessions)

	_, _, unknown := s.Login(context.Background(), LoginRequest{Username: "nobody", Password: "correct"})
	_, _, wrong := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})

	require.NotNil(t, unknown)
	require.NotNil(t, wrong)
	assert.Equal(t, unknown, wrong)
	assert.Equal(t, response.Unauthorized, wrong.Code)
	assert.Zero(t, sessions.Count("Replace"))
}

func TestLoginStoreError(t *testing.T) {
	users := testutils.NewUserStore()
	users.FindErr = errors.New("connection refused")
	s := newService(users, testutils.NewSessionStore())

	_, _, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "x"})

	require.NotNil(t, err)
	assert.Equal(t, response.Fail, err.Code)
}

func TestNewServiceFallsBackOnBadCost(t *testing.T) {
	s := NewService(testutils.NewUserStore(), nil, bcrypt.MaxCost+1)

	require.NotEmpty(t, s.dummyHash)
	cost, err := bcrypt.Cost(s.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
