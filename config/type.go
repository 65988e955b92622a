package config

import (
	"time"

	"pack/pkg/email"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
	Smtp     email.Config   `koanf:"smtp"`
	Session  SessionConfig  `koanf:"session"`
	Gate     GateConfig     `koanf:"gate"`
	Alert    AlertConfig    `koanf:"alert"`
	Bcrypt   BcryptConfig   `koanf:"bcrypt"`
	Code     CodeConfig     `koanf:"code"`
}

type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	Mode           string        `koanf:"mode"` // debug, release, test
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	Swagger        bool          `koanf:"swagger"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // seconds
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
	Output string `koanf:"output"` // stdout, file
	Path   string `koanf:"path"`
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string        `koanf:"cookie_name"`
	TTL        time.Duration `koanf:"ttl"`
	Secure     bool          `koanf:"secure"`
}

// GateConfig lists the page prefixes that need a live session.
type GateConfig struct {
	ProtectedPrefixes []string `koanf:"protected_prefixes"`
	ExcludedPrefixes  []string `koanf:"excluded_prefixes"`
	LoginPath         string   `koanf:"login_path"`
}

type AlertConfig struct {
	From       string   `koanf:"from"`
	Recipients []string `koanf:"recipients"`
}

type BcryptConfig struct {
	Cost int `koanf:"cost"`
}

// CodeConfig controls e-mail verification codes.
type CodeConfig struct {
	TTL    time.Duration `koanf:"ttl"`
	Length int           `koanf:"length"`
	From   string        `koanf:"from"`
	// sends allowed per user and per address within RateWindow
	RateLimit  int           `koanf:"rate_limit"`
	RateWindow time.Duration `koanf:"rate_window"`
}
