package email

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBytes(t *testing.T) {
	msg := &Message{
		From:    "Pack <noreply@pack.school>",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "hello",
		Body:    "body",
	}

	raw, err := msg.Bytes()
	require.NoError(t, err)

	want := "From: Pack <noreply@pack.school>\r\n" +
		"To: a@example.com, b@example.com\r\n" +
		"Subject: hello\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\nbody"
	assert.Equal(t, want, string(raw))
}

func TestMessageBytesValidation(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"no sender", Message{To: []string{"a@b.c"}, Subject: "s"}},
		{"no recipients", Message{From: "x@y.z", Subject: "s"}},
		{"no subject", Message{From: "x@y.z", To: []string{"a@b.c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.msg.Bytes()
			assert.Error(t, err)
		})
	}
}

func TestSignupRollbackTemplate(t *testing.T) {
	data := SignupRollbackData{
		UserID:      "u-1",
		Username:    "alice",
		Role:        "Student",
		Step:        "create student profile",
		Cause:       "unique violation",
		RollbackErr: errors.New("connection reset").Error(),
		At:          time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}

	body, err := signupRollback.Render(data)
	require.NoError(t, err)

	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "FAILED: connection reset")
	assert.Contains(t, body, "2026-09-01T08:00:00Z")
	assert.True(t, strings.Contains(body, "Remove it by hand"))
}

func TestVerificationCodeTemplateEscapes(t *testing.T) {
	body, err := verificationCode.Render(VerificationCodeData{Code: "<b>123</b>", ExpireMinutes: 10})
	require.NoError(t, err)
	assert.NotContains(t, body, "<b>123</b>")
	assert.Contains(t, body, "10 minutes")
}
