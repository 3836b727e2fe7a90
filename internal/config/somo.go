// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads somo configuration from ~/.somo/config.toml
// with environment variable overrides and built-in defaults.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the complete somo configuration.
type Config struct {
	// API settings
	API APIConfig `toml:"api"`

	// Identity provider settings
	Auth AuthConfig `toml:"auth"`

	// UI settings
	UI UIConfig `toml:"ui"`
}

// APIConfig points at the Lesson Plan Generator backend.
type APIConfig struct {
	// URL is the backend base URL. Override: SOMO_API_URL.
	URL string `toml:"url"`
}

// AuthConfig holds identity provider settings.
type AuthConfig struct {
	// WebAPIKey authorizes token refresh calls. Override: SOMO_WEB_API_KEY.
	WebAPIKey string `toml:"web_api_key"`
	// SignInURL is the hosted sign-in page for the interactive flow.
	SignInURL string `toml:"sign_in_url"`
	// TokenURL is the token refresh endpoint. Empty uses the provider
	// default.
	TokenURL string `toml:"token_url"`
	// CredentialsPath overrides where the session is persisted.
	CredentialsPath string `toml:"credentials_path"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	// GlamourStyle selects the markdown rendering style: "auto",
	// "dark", "light", or "notty".
	GlamourStyle string `toml:"glamour_style"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{URL: "http://localhost:8000"},
		UI:  UIConfig{GlamourStyle: "auto"},
	}
}

// Dir returns the somo configuration directory (~/.somo).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".somo"
	}
	return filepath.Join(home, ".somo")
}

// Path returns the configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, applies environment overrides, and
// validates. A missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a specific config file path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SOMO_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("SOMO_WEB_API_KEY"); v != "" {
		cfg.Auth.WebAPIKey = v
	}
	if v := os.Getenv("SOMO_SIGN_IN_URL"); v != "" {
		cfg.Auth.SignInURL = v
	}
}

// Validate checks field values that would otherwise fail deep inside a
// request.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: api.url %q is not a valid URL", c.API.URL)
	}
	switch c.UI.GlamourStyle {
	case "", "auto", "dark", "light", "notty":
	default:
		return fmt.Errorf("config: ui.glamour_style %q is not one of auto, dark, light, notty", c.UI.GlamourStyle)
	}
	return nil
}

// Save writes the config file, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
