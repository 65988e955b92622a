// Package config loads config.yaml and overlays environment variables.
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// Load reads the config file once per process.
func Load(configPath string) error {
	var err error
	once.Do(func() {
		if err = godotenv.Load(); err != nil {
			log.Printf("warning: no .env file loaded: %v", err)
		}

		k = koanf.New(".")
		Conf, err = parse(k, configPath)
	})

	return err
}

// MustLoad loads the config or exits.
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("config load failed: %v", err)
	}
}

// Parse reads configPath into a fresh AppConfig without touching Conf.
func Parse(configPath string) (*AppConfig, error) {
	return parse(koanf.New("."), configPath)
}

func parse(k *koanf.Koanf, configPath string) (*AppConfig, error) {
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// SESSION_COOKIE_NAME -> session.cookie.name would miss the field, so only
	// the first underscore splits section from key.
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		log.Printf("load environment failed: %v", err)
	}

	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	conf.ApplyDefaults()
	return conf, nil
}

func envKey(s string) string {
	s = strings.ToLower(s)
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + key
}

// Default returns a config with every default applied.
func Default() *AppConfig {
	conf := &AppConfig{}
	conf.ApplyDefaults()
	return conf
}

// ApplyDefaults fills zero values.
func (c *AppConfig) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}

	if c.Session.CookieName == "" {
		c.Session.CookieName = "sessionCookie"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 7 * 24 * time.Hour
	}

	if len(c.Gate.ProtectedPrefixes) == 0 {
		c.Gate.ProtectedPrefixes = []string{"/dashboard", "/settings"}
	}
	if len(c.Gate.ExcludedPrefixes) == 0 {
		c.Gate.ExcludedPrefixes = []string{"/api/", "/static/", "/_next/", "/favicon.ico", "/metrics", "/swagger/"}
	}
	if c.Gate.LoginPath == "" {
		c.Gate.LoginPath = "/login"
	}

	if c.Bcrypt.Cost == 0 {
		c.Bcrypt.Cost = 12
	}

	if c.Code.TTL == 0 {
		c.Code.TTL = 10 * time.Minute
	}
	if c.Code.Length == 0 {
		c.Code.Length = 6
	}
	if c.Code.RateLimit == 0 {
		c.Code.RateLimit = 5
	}
	if c.Code.RateWindow == 0 {
		c.Code.RateWindow = time.Hour
	}
	if c.Code.From == "" {
		c.Code.From = "Pack <noreply@pack.school>"
	}
	if c.Alert.From == "" {
		c.Alert.From = c.Code.From
	}
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
