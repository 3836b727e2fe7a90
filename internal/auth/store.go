// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var (
	// ErrNotSignedIn indicates a token was requested with no session.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrProviderUnavailable indicates the identity provider was never
	// configured (missing API key or endpoint).
	ErrProviderUnavailable = errors.New("identity provider not configured")

	// ErrSignInCancelled indicates the user abandoned the interactive
	// sign-in flow.
	ErrSignInCancelled = errors.New("sign-in cancelled")
)

// Config holds identity provider settings.
type Config struct {
	// WebAPIKey authorizes calls to the provider's token endpoint.
	WebAPIKey string

	// SignInURL is the hosted sign-in page opened during the
	// interactive flow.
	SignInURL string

	// TokenURL is the refresh endpoint. Defaults to the Google secure
	// token service.
	TokenURL string

	// CredentialsPath is where the session is persisted. Defaults to
	// ~/.somo/credentials.json.
	CredentialsPath string
}

// DefaultTokenURL is the Google Identity Platform refresh endpoint.
const DefaultTokenURL = "https://securetoken.googleapis.com/v1/token"

// Store is the single-instance session cache. It owns the credential
// file, hands out fresh ID tokens, and notifies subscribers whenever
// the session changes, including changes made by another process.
type Store struct {
	cfg        Config
	httpClient *http.Client

	mu      sync.Mutex
	creds   *credentials
	loading bool
	subs    map[int]func(*Session)
	nextSub int

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore creates a session store. Call Start before use.
func NewStore(cfg Config) *Store {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = DefaultCredentialsPath()
	}
	return &Store{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		loading:    true,
		subs:       make(map[int]func(*Session)),
	}
}

// WithHTTPClient overrides the provider HTTP client. Used by tests.
func (s *Store) WithHTTPClient(hc *http.Client) *Store {
	s.httpClient = hc
	return s
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start loads the persisted session and begins watching the credential
// file so sign-in or sign-out from another process surfaces as a
// session change. The loading flag drops once the initial load
// resolves, whatever the outcome.
func (s *Store) Start() error {
	creds, err := loadCredentials(s.cfg.CredentialsPath)
	if err != nil {
		log.Printf("auth: discarding unreadable credentials: %v", err)
		creds = nil
	}

	s.mu.Lock()
	s.creds = creds
	s.loading = false
	s.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start credential watcher: %w", err)
	}
	// Watch the directory: editors and this store both replace the
	// file rather than rewriting it in place.
	if err := ensureDir(s.cfg.CredentialsPath); err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(dirOf(s.cfg.CredentialsPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch credentials dir: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watchLoop()
	return nil
}

// Stop tears down the watcher. Subscribers receive no further
// notifications after Stop returns.
func (s *Store) Stop() {
	if s.watcher != nil {
		s.watcher.Close()
		<-s.done
		s.watcher = nil
	}
	s.mu.Lock()
	s.subs = make(map[int]func(*Session))
	s.mu.Unlock()
}

func (s *Store) watchLoop() {
	defer close(s.done)
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != s.cfg.CredentialsPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.reload()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("auth: credential watcher: %v", err)
		}
	}
}

// reload re-reads the credential file and notifies subscribers when
// the session identity changed.
func (s *Store) reload() {
	creds, err := loadCredentials(s.cfg.CredentialsPath)
	if err != nil {
		log.Printf("auth: ignoring unreadable credentials: %v", err)
		return
	}

	s.mu.Lock()
	changed := sessionID(s.creds) != sessionID(creds)
	s.creds = creds
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// =============================================================================
// STATE
// =============================================================================

// Session returns the current session, or nil when signed out.
func (s *Store) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil
	}
	sess := s.creds.Session
	return &sess
}

// Loading reports whether the initial session load has resolved.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers a session-change callback and returns its
// unsubscribe function. The callback receives nil on sign-out.
func (s *Store) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	sess := (*Session)(nil)
	if s.creds != nil {
		cur := s.creds.Session
		sess = &cur
	}
	fns := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}

// =============================================================================
// TOKENS
// =============================================================================

// Token returns a fresh ID token for the current session, refreshing
// through the provider when the cached one is near expiry.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	creds := s.creds
	s.mu.Unlock()

	if creds == nil {
		return "", ErrNotSignedIn
	}
	if tokenFresh(creds.IDToken, time.Now()) {
		return creds.IDToken, nil
	}
	return s.refresh(ctx, creds)
}

// refreshResponse is the provider's token endpoint reply.
type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// refresh exchanges the refresh token for a new ID token and persists
// the rotated pair.
func (s *Store) refresh(ctx context.Context, creds *credentials) (string, error) {
	if s.cfg.WebAPIKey == "" {
		return "", ErrProviderUnavailable
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {creds.RefreshToken},
	}
	endpoint := s.cfg.TokenURL + "?key=" + url.QueryEscape(s.cfg.WebAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh token: provider returned HTTP %d", resp.StatusCode)
	}

	var tok refreshResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	if tok.IDToken == "" {
		return "", fmt.Errorf("refresh token: provider returned no id token")
	}

	updated := *creds
	updated.IDToken = tok.IDToken
	if tok.RefreshToken != "" {
		updated.RefreshToken = tok.RefreshToken
	}

	s.mu.Lock()
	s.creds = &updated
	s.mu.Unlock()

	if err := saveCredentials(s.cfg.CredentialsPath, &updated); err != nil {
		log.Printf("auth: persisting refreshed token: %v", err)
	}
	return updated.IDToken, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func sessionID(creds *credentials) string {
	if creds == nil {
		return ""
	}
	return creds.Session.UserID
}
