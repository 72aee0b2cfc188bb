// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings belong in the file; the session itself lives in
// the session store. Every field can be overridden by a LENSFOLIO_* variable,
// optionally from a .env file in the working directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	apperrors "lensfolio/cli/internal/errors"
	"lensfolio/cli/internal/xdg"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LENSFOLIO_"

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`
	// Verbose is env-only and forces debug logging.
	Verbose      bool            `json:"-" env:"VERBOSE"`
	Platform     PlatformConfig  `json:"platform" envPrefix:"PLATFORM_"`
	Detection    DetectionConfig `json:"detection" envPrefix:"DETECTION_"`
	Store        StoreConfig     `json:"store" envPrefix:"STORE_"`
	PollInterval Duration        `json:"poll_interval" env:"POLL_INTERVAL"`
}

// PlatformConfig identifies the platform and its credential cookies.
type PlatformConfig struct {
	Domain        string `json:"domain" env:"DOMAIN"`
	LoginURL      string `json:"login_url" env:"LOGIN_URL"`
	SessionCookie string `json:"session_cookie" env:"SESSION_COOKIE"`
	UserCookie    string `json:"user_cookie" env:"USER_COOKIE"`
}

// DetectionConfig holds the challenge classifier rules.
type DetectionConfig struct {
	ChallengePaths []string `json:"challenge_paths" env:"CHALLENGE_PATHS"`
	LoginPaths     []string `json:"login_paths" env:"LOGIN_PATHS"`
	BodyMarkers    []string `json:"body_markers,omitempty" env:"BODY_MARKERS"`
}

// StoreConfig selects and configures the session store backend.
type StoreConfig struct {
	// Backend is one of keyring, file, redis or memory.
	Backend  string `json:"backend" env:"BACKEND"`
	FilePath string `json:"file_path,omitempty" env:"FILE_PATH"`
	// SealKey is a hex AES key for the file backend. Prefer the env var.
	SealKey       string `json:"seal_key,omitempty" env:"SEAL_KEY"`
	RedisAddr     string `json:"redis_addr,omitempty" env:"REDIS_ADDR"`
	RedisPassword string `json:"redis_password,omitempty" env:"REDIS_PASSWORD"`
	RedisDB       int    `json:"redis_db,omitempty" env:"REDIS_DB"`
	RedisKey      string `json:"redis_key,omitempty" env:"REDIS_KEY"`
	// KeyringPassword unlocks the encrypted-file keyring fallback on hosts
	// without a native keychain. Env-only.
	KeyringPassword string `json:"-" env:"KEYRING_PASSWORD"`
}

// Duration is a time.Duration written as "3s" in JSON and env vars.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

var backends = map[string]bool{"keyring": true, "file": true, "redis": true, "memory": true}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Platform: PlatformConfig{
			Domain:        "instagram.com",
			LoginURL:      "https://www.instagram.com/accounts/login/",
			SessionCookie: "sessionid",
			UserCookie:    "ds_user_id",
		},
		Detection: DetectionConfig{
			ChallengePaths: []string{"/challenge/", "/checkpoint/", "/accounts/suspended/", "/auth_platform/codeentry/"},
			LoginPaths:     []string{"/accounts/login", "/accounts/emailsignup"},
		},
		Store:        StoreConfig{Backend: "keyring"},
		PollInterval: Duration{3 * time.Second},
	}
}

// DefaultPath returns the path to the config file.
func DefaultPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from path (DefaultPath when empty) and applies
// environment overrides; a missing file yields defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, apperrors.Wrap(apperrors.ConfigInvalid, "read .env", err)
	}
	return load(path, nil)
}

// load is Load with an explicit environment; nil means the process env.
func load(path string, environ map[string]string) (Config, error) {
	c := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return c, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, apperrors.Wrap(apperrors.ConfigInvalid, "parse "+path, err)
		}
	}

	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return c, apperrors.Wrap(apperrors.ConfigInvalid, "environment overrides", err)
	}
	if c.Verbose {
		c.LogLevel = "debug"
	}
	return c, c.Validate()
}

// Validate rejects configurations the CLI cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Platform.Domain) == "" {
		return apperrors.New(apperrors.ConfigInvalid, "platform.domain is required")
	}
	if c.Platform.SessionCookie == "" || c.Platform.UserCookie == "" {
		return apperrors.New(apperrors.ConfigInvalid, "platform.session_cookie and platform.user_cookie are required")
	}
	if !backends[c.Store.Backend] {
		return apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("unknown store.backend %q", c.Store.Backend))
	}
	if c.Store.Backend == "redis" && c.Store.RedisAddr == "" {
		return apperrors.New(apperrors.ConfigInvalid, "store.redis_addr is required for the redis backend")
	}
	if c.PollInterval.Duration < 0 {
		return apperrors.New(apperrors.ConfigInvalid, "poll_interval must not be negative")
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(path string, c Config) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
