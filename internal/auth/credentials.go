// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the process-wide session store for the Lesson
// Plan Generator identity provider.
//
// The store keeps the current session and its tokens on disk so that
// sign-in survives restarts and propagates between processes, and
// exposes a session-change subscription to the UI. The provider's own
// wire protocol is limited to two touch points: the hosted sign-in
// page (interactive flow) and the token refresh endpoint.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the signed-in user.
type Session struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// credentials is the on-disk credential record. The ID token is a JWT
// whose exp claim drives refresh; the refresh token mints new ID
// tokens through the provider's token endpoint.
type credentials struct {
	Session      Session `json:"session"`
	IDToken      string  `json:"idToken"`
	RefreshToken string  `json:"refreshToken"`
}

// expirySkew is how close to expiry a token may be and still be
// handed out. Inside the skew the store refreshes first.
const expirySkew = 2 * time.Minute

// DefaultCredentialsPath returns ~/.somo/credentials.json.
func DefaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".somo", "credentials.json")
	}
	return filepath.Join(home, ".somo", "credentials.json")
}

// loadCredentials reads the credential file. A missing file is the
// signed-out state, not an error.
func loadCredentials(path string) (*credentials, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var creds credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.RefreshToken == "" || creds.Session.UserID == "" {
		return nil, fmt.Errorf("parse credentials: incomplete record")
	}
	return &creds, nil
}

// saveCredentials writes the credential file with owner-only
// permissions, creating the parent directory if needed.
func saveCredentials(path string, creds *credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// removeCredentials deletes the credential file. Already-absent is
// fine.
func removeCredentials(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// tokenExpiry reads the exp claim from an ID token. The signature is
// the backend's to verify; the client only needs the expiry to decide
// when to refresh.
func tokenExpiry(idToken string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse id token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("parse id token: no expiry claim")
	}
	return exp.Time, nil
}

// tokenFresh reports whether the ID token is still usable, leaving
// expirySkew of margin. An unparseable token is treated as stale.
func tokenFresh(idToken string, now time.Time) bool {
	if idToken == "" {
		return false
	}
	exp, err := tokenExpiry(idToken)
	if err != nil {
		return false
	}
	return now.Add(expirySkew).Before(exp)
}
