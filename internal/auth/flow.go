// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// SignIn runs the interactive browser sign-in flow. It opens the
// provider's hosted sign-in page with a loopback redirect, then blocks
// until the page posts the session back or ctx is cancelled. On
// success the credential file is written and subscribers are notified.
func (s *Store) SignIn(ctx context.Context) error {
	if s.cfg.WebAPIKey == "" || s.cfg.SignInURL == "" {
		return ErrProviderUnavailable
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("start callback listener: %w", err)
	}
	defer listener.Close()

	type callback struct {
		creds *credentials
		err   error
	}
	results := make(chan callback, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		creds := &credentials{
			Session: Session{
				UserID:      q.Get("user_id"),
				DisplayName: q.Get("display_name"),
				Email:       q.Get("email"),
			},
			IDToken:      q.Get("id_token"),
			RefreshToken: q.Get("refresh_token"),
		}
		if creds.Session.UserID == "" || creds.RefreshToken == "" {
			http.Error(w, "sign-in failed: incomplete callback", http.StatusBadRequest)
			results <- callback{err: fmt.Errorf("sign-in callback missing session fields")}
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this tab and return to the terminal.")
		results <- callback{creds: creds}
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Close()

	redirect := fmt.Sprintf("http://%s/callback", listener.Addr())
	page := s.cfg.SignInURL + "?redirect_uri=" + url.QueryEscape(redirect)
	if err := openBrowser(page); err != nil {
		// The flow still works if the user pastes the URL themselves.
		fmt.Fprintf(os.Stderr, "Open this URL to sign in:\n  %s\n", page)
	}

	select {
	case <-ctx.Done():
		if ctx.Err() == context.Canceled {
			return ErrSignInCancelled
		}
		return ctx.Err()
	case res := <-results:
		if res.err != nil {
			return res.err
		}
		if err := saveCredentials(s.cfg.CredentialsPath, res.creds); err != nil {
			return err
		}
		s.mu.Lock()
		s.creds = res.creds
		s.mu.Unlock()
		s.notify()
		return nil
	}
}

// SignOut clears the persisted session and notifies subscribers.
func (s *Store) SignOut(ctx context.Context) error {
	if s.cfg.WebAPIKey == "" {
		return ErrProviderUnavailable
	}
	if err := removeCredentials(s.cfg.CredentialsPath); err != nil {
		return err
	}
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// openBrowser launches the system browser at the given URL.
func openBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Detach; the browser outlives the flow.
	go cmd.Wait()
	return nil
}

func dirOf(path string) string {
	return filepath.Dir(path)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	return nil
}
