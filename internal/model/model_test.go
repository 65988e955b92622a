package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyStageFor(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{6, ""},
		{7, KeyStage3},
		{9, KeyStage3},
		{10, GCSE},
		{11, GCSE},
		{12, ALevel},
		{13, ALevel},
		{14, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyStageFor(tt.year), "year %d", tt.year)
	}
}

func TestSessionExpiredAt(t *testing.T) {
	expires := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{Expires: expires}

	assert.False(t, s.ExpiredAt(expires.Add(-time.Second)))
	assert.False(t, s.ExpiredAt(expires), "expiry instant is still valid")
	assert.True(t, s.ExpiredAt(expires.Add(time.Nanosecond)))
}

func TestUserIdentity(t *testing.T) {
	created := time.Now()
	u := &User{ID: 7, Username: "alice", Email: "a@example.com", FirstName: "Alice", Role: RoleStudent, PasswordHash: "x", CreatedAt: created}

	id := u.Identity()

	assert.Equal(t, &Identity{UserID: 7, Username: "alice", Email: "a@example.com", FirstName: "Alice", Role: RoleStudent, CreatedAt: created}, id)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleTeacher.Valid())
	assert.False(t, Role("Admin").Valid())
	assert.False(t, Role("student").Valid())
}
