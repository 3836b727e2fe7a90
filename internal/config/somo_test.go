// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.API.URL != "http://localhost:8000" {
		t.Errorf("API.URL = %q, want the default backend", cfg.API.URL)
	}
	if cfg.UI.GlamourStyle != "auto" {
		t.Errorf("UI.GlamourStyle = %q, want auto", cfg.UI.GlamourStyle)
	}
}

func TestLoadFrom_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
url = "https://somo.example.com"

[auth]
web_api_key = "key-1"
sign_in_url = "https://somo.example.com/signin"

[ui]
glamour_style = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.API.URL != "https://somo.example.com" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.Auth.WebAPIKey != "key-1" {
		t.Errorf("Auth.WebAPIKey = %q", cfg.Auth.WebAPIKey)
	}
	if cfg.UI.GlamourStyle != "dark" {
		t.Errorf("UI.GlamourStyle = %q", cfg.UI.GlamourStyle)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nurl = \"http://file-wins:8000\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("SOMO_API_URL", "http://env-wins:9000")
	t.Setenv("SOMO_WEB_API_KEY", "env-key")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.API.URL != "http://env-wins:9000" {
		t.Errorf("API.URL = %q, want env override", cfg.API.URL)
	}
	if cfg.Auth.WebAPIKey != "env-key" {
		t.Errorf("Auth.WebAPIKey = %q, want env override", cfg.Auth.WebAPIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.API.URL = "not a url" }, true},
		{"url without scheme", func(c *Config) { c.API.URL = "localhost:8000" }, true},
		{"bad glamour style", func(c *Config) { c.UI.GlamourStyle = "sepia" }, true},
		{"notty style", func(c *Config) { c.UI.GlamourStyle = "notty" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.API.URL = "https://somo.example.com"
	cfg.Auth.SignInURL = "https://somo.example.com/signin"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.API.URL != cfg.API.URL {
		t.Errorf("API.URL = %q, want %q", loaded.API.URL, cfg.API.URL)
	}
	if loaded.Auth.SignInURL != cfg.Auth.SignInURL {
		t.Errorf("Auth.SignInURL = %q, want %q", loaded.Auth.SignInURL, cfg.Auth.SignInURL)
	}
}
