// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// mintToken returns a JWT expiring at the given time. The signature is
// irrelevant; only the exp claim is read.
func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "user-1",
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func tempCredsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "credentials.json")
}

// =============================================================================
// CREDENTIAL FILE TESTS
// =============================================================================

func TestCredentials_RoundTrip(t *testing.T) {
	path := tempCredsPath(t)
	creds := &credentials{
		Session:      Session{UserID: "user-1", DisplayName: "Amali", Email: "amali@example.com"},
		IDToken:      "id-token",
		RefreshToken: "refresh-token",
	}
	require.NoError(t, saveCredentials(path, creds))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := loadCredentials(path)
	require.NoError(t, err)
	require.Equal(t, creds, loaded)

	require.NoError(t, removeCredentials(path))
	loaded, err = loadCredentials(path)
	require.NoError(t, err)
	require.Nil(t, loaded)

	// Removing again is not an error.
	require.NoError(t, removeCredentials(path))
}

func TestLoadCredentials_IncompleteRecord(t *testing.T) {
	path := tempCredsPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"idToken": "only-a-token"}`), 0o600))

	_, err := loadCredentials(path)
	require.Error(t, err)
}

// =============================================================================
// TOKEN FRESHNESS TESTS
// =============================================================================

func TestTokenFresh(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"fresh token", mintToken(t, now.Add(1*time.Hour)), true},
		{"expired token", mintToken(t, now.Add(-1*time.Hour)), false},
		{"inside skew", mintToken(t, now.Add(30*time.Second)), false},
		{"empty token", "", false},
		{"garbage token", "not.a.jwt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tokenFresh(tt.token, now))
		})
	}
}

// =============================================================================
// STORE TESTS
// =============================================================================

func TestStore_TokenWithoutSession(t *testing.T) {
	store := NewStore(Config{CredentialsPath: tempCredsPath(t)})
	require.NoError(t, store.Start())
	defer store.Stop()

	require.False(t, store.Loading())
	require.Nil(t, store.Session())

	_, err := store.Token(context.Background())
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestStore_TokenServedFromCache(t *testing.T) {
	path := tempCredsPath(t)
	fresh := mintToken(t, time.Now().Add(1*time.Hour))
	require.NoError(t, saveCredentials(path, &credentials{
		Session:      Session{UserID: "user-1"},
		IDToken:      fresh,
		RefreshToken: "refresh-token",
	}))

	called := false
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer provider.Close()

	store := NewStore(Config{
		WebAPIKey:       "key-1",
		TokenURL:        provider.URL,
		CredentialsPath: path,
	})
	require.NoError(t, store.Start())
	defer store.Stop()

	tok, err := store.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, fresh, tok)
	require.False(t, called, "fresh token must not hit the provider")
}

func TestStore_TokenRefreshesWhenStale(t *testing.T) {
	path := tempCredsPath(t)
	stale := mintToken(t, time.Now().Add(-1*time.Minute))
	require.NoError(t, saveCredentials(path, &credentials{
		Session:      Session{UserID: "user-1"},
		IDToken:      stale,
		RefreshToken: "refresh-old",
	}))

	rotated := mintToken(t, time.Now().Add(1*time.Hour))
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "refresh-old", r.PostForm.Get("refresh_token"))
		require.Equal(t, "key-1", r.URL.Query().Get("key"))
		w.Write([]byte(`{"id_token": "` + rotated + `", "refresh_token": "refresh-new", "user_id": "user-1"}`))
	}))
	defer provider.Close()

	store := NewStore(Config{
		WebAPIKey:       "key-1",
		TokenURL:        provider.URL,
		CredentialsPath: path,
	})
	require.NoError(t, store.Start())
	defer store.Stop()

	tok, err := store.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, rotated, tok)

	// The rotated pair is persisted for the next run.
	saved, err := loadCredentials(path)
	require.NoError(t, err)
	require.Equal(t, rotated, saved.IDToken)
	require.Equal(t, "refresh-new", saved.RefreshToken)
}

func TestStore_RefreshRequiresProvider(t *testing.T) {
	path := tempCredsPath(t)
	require.NoError(t, saveCredentials(path, &credentials{
		Session:      Session{UserID: "user-1"},
		IDToken:      mintToken(t, time.Now().Add(-1*time.Minute)),
		RefreshToken: "refresh-old",
	}))

	store := NewStore(Config{CredentialsPath: path})
	require.NoError(t, store.Start())
	defer store.Stop()

	_, err := store.Token(context.Background())
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestStore_SignOutNotifiesSubscribers(t *testing.T) {
	path := tempCredsPath(t)
	require.NoError(t, saveCredentials(path, &credentials{
		Session:      Session{UserID: "user-1", Email: "amali@example.com"},
		IDToken:      "id-token",
		RefreshToken: "refresh-token",
	}))

	store := NewStore(Config{WebAPIKey: "key-1", CredentialsPath: path})
	require.NoError(t, store.Start())
	defer store.Stop()

	require.NotNil(t, store.Session())

	var got []*Session
	unsubscribe := store.Subscribe(func(sess *Session) {
		got = append(got, sess)
	})

	require.NoError(t, store.SignOut(context.Background()))
	require.Nil(t, store.Session())
	require.Len(t, got, 1)
	require.Nil(t, got[0])

	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	// After unsubscribing no further notifications arrive.
	unsubscribe()
	require.NoError(t, store.SignOut(context.Background()))
	require.Len(t, got, 1)
}

func TestStore_WatcherPicksUpExternalSignIn(t *testing.T) {
	path := tempCredsPath(t)
	store := NewStore(Config{CredentialsPath: path})
	require.NoError(t, store.Start())
	defer store.Stop()

	sessions := make(chan *Session, 1)
	store.Subscribe(func(sess *Session) {
		sessions <- sess
	})

	// Another process signs in by writing the credential file.
	require.NoError(t, saveCredentials(path, &credentials{
		Session:      Session{UserID: "user-2", Email: "other@example.com"},
		IDToken:      "id-token",
		RefreshToken: "refresh-token",
	}))

	select {
	case sess := <-sessions:
		require.NotNil(t, sess)
		require.Equal(t, "user-2", sess.UserID)
	case <-time.After(3 * time.Second):
		t.Fatal("no session change observed after external credential write")
	}
}
