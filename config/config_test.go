package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseAppliesDefaults(t *testing.T) {
	conf, err := Parse(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9000, conf.Server.Port)
	assert.Equal(t, "sessionCookie", conf.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, conf.Session.TTL)
	assert.Equal(t, []string{"/dashboard", "/settings"}, conf.Gate.ProtectedPrefixes)
	assert.Equal(t, "/login", conf.Gate.LoginPath)
	assert.Equal(t, 12, conf.Bcrypt.Cost)
	assert.Equal(t, 6, conf.Code.Length)
	assert.Equal(t, 5, conf.Code.RateLimit)
	assert.Equal(t, time.Hour, conf.Code.RateWindow)
}

func TestParseReadsSections(t *testing.T) {
	body := `
session:
  cookie_name: sid
  ttl: 1h
  secure: true
gate:
  protected_prefixes: [/dashboard]
smtp:
  host: smtp.example.com
  tls: true
`
	conf, err := Parse(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, "sid", conf.Session.CookieName)
	assert.Equal(t, time.Hour, conf.Session.TTL)
	assert.True(t, conf.Session.Secure)
	assert.Equal(t, []string{"/dashboard"}, conf.Gate.ProtectedPrefixes)
	assert.Equal(t, "smtp.example.com", conf.Smtp.Host)
	assert.True(t, conf.Smtp.UseTLS)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SESSION_COOKIE_NAME", "fromenv")
	t.Setenv("SERVER_PORT", "7000")

	conf, err := Parse(writeConfig(t, "session:\n  cookie_name: fromfile\n"))
	require.NoError(t, err)

	assert.Equal(t, "fromenv", conf.Session.CookieName)
	assert.Equal(t, 7000, conf.Server.Port)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"SESSION_COOKIE_NAME": "session.cookie_name",
		"SERVER_PORT":         "server.port",
		"HOME":                "home",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
