// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaliw/somo-tui/internal/model"
)

// staticTokens is a TokenSource returning a fixed token or error.
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticTokens{token: "tok-123"}), srv
}

// =============================================================================
// REQUEST SHAPE TESTS
// =============================================================================

func TestGenerateLesson_RequestShape(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotAuth   string
		gotCT     string
		gotReqID  string
		gotBody   map[string]any
	)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-ID")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		json.NewEncoder(w).Encode(model.GenerateResponse{LessonID: "lesson-1"})
	})

	resp, err := client.GenerateLesson(context.Background(), model.GenerateRequest{
		Region:          "Kenya",
		GradeBand:       "6-8",
		DurationMinutes: 20,
		TopicPrompt:     "Photosynthesis",
	})
	if err != nil {
		t.Fatalf("GenerateLesson() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/api/generate" {
		t.Errorf("path = %s, want /api/generate", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotCT)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID header not set")
	}
	if gotBody["topicPrompt"] != "Photosynthesis" {
		t.Errorf("body topicPrompt = %v, want Photosynthesis", gotBody["topicPrompt"])
	}
	if gotBody["durationMinutes"] != float64(20) {
		t.Errorf("body durationMinutes = %v, want 20", gotBody["durationMinutes"])
	}
	if resp.LessonID != "lesson-1" {
		t.Errorf("LessonID = %q, want lesson-1", resp.LessonID)
	}
}

func TestUpdateLesson_WrapsPlan(t *testing.T) {
	var gotBody map[string]json.RawMessage
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/lessons/lesson-9" {
			t.Errorf("path = %s, want /api/lessons/lesson-9", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		json.NewEncoder(w).Encode(model.LessonDocument{ID: "lesson-9"})
	})

	doc, err := client.UpdateLesson(context.Background(), "lesson-9", model.LessonPlan{Title: "Edited"})
	if err != nil {
		t.Fatalf("UpdateLesson() error = %v", err)
	}
	if _, ok := gotBody["lessonPlan"]; !ok {
		t.Error("update body should wrap the plan under lessonPlan")
	}
	if doc.ID != "lesson-9" {
		t.Errorf("ID = %q, want lesson-9", doc.ID)
	}
}

func TestVideoEndpoints(t *testing.T) {
	var gotPaths []string
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/api/generate-video":
			json.NewEncoder(w).Encode(model.VideoResponse{VideoID: "vid-1", Title: "Water Cycle"})
		case r.URL.Path == "/api/videos":
			json.NewEncoder(w).Encode([]model.VideoSummary{{ID: "vid-1"}})
		default:
			w.WriteHeader(http.StatusOK)
		}
	})

	ctx := context.Background()
	resp, err := client.GenerateVideo(ctx, model.VideoRequest{Topic: "Water cycle", GradeBand: "6-8", Region: "Kenya", SlideCount: 5})
	if err != nil {
		t.Fatalf("GenerateVideo() error = %v", err)
	}
	if resp.VideoID != "vid-1" {
		t.Errorf("VideoID = %q, want vid-1", resp.VideoID)
	}

	videos, err := client.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos() error = %v", err)
	}
	if len(videos) != 1 {
		t.Errorf("ListVideos() returned %d videos, want 1", len(videos))
	}

	if err := client.DeleteVideo(ctx, "vid-1"); err != nil {
		t.Fatalf("DeleteVideo() error = %v", err)
	}

	want := []string{
		"POST /api/generate-video",
		"GET /api/videos",
		"DELETE /api/videos/vid-1",
	}
	for i, p := range want {
		if i >= len(gotPaths) || gotPaths[i] != p {
			t.Errorf("call %d = %v, want %s", i, gotPaths, p)
		}
	}

	if got, want := client.StreamURL("vid-1"), srv.URL+"/api/videos/vid-1/stream"; got != want {
		t.Errorf("StreamURL() = %q, want %q", got, want)
	}
}

// =============================================================================
// ERROR MAPPING TESTS
// =============================================================================

func TestErrorResponse_DetailParsed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"detail": "Not authorized"}`)
	})

	_, err := client.GetLesson(context.Background(), "lesson-1")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("GetLesson() error = %v, want *RequestError", err)
	}
	if reqErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", reqErr.Status)
	}
	if reqErr.Detail != "Not authorized" {
		t.Errorf("Detail = %q, want Not authorized", reqErr.Detail)
	}
}

func TestErrorResponse_GenericFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html body", "<html>Internal Server Error</html>"},
		{"empty body", ""},
		{"json without detail", `{"message": "boom"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, tt.body)
			})

			_, err := client.ListLessons(context.Background())
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("ListLessons() error = %v, want *RequestError", err)
			}
			if reqErr.Detail != "request failed" {
				t.Errorf("Detail = %q, want request failed", reqErr.Detail)
			}
		})
	}
}

func TestTokenFailure_NoRequestSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens{err: ErrNotAuthenticated})
	_, err := client.ListLessons(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("ListLessons() error = %v, want ErrNotAuthenticated", err)
	}
	if called {
		t.Error("request was sent despite token failure")
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json at all")
	})

	_, err := client.GetLesson(context.Background(), "lesson-1")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("GetLesson() error = %v, want ErrMalformedResponse", err)
	}
}

func TestDeleteLesson_DiscardsBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "not json at all")
	})

	if err := client.DeleteLesson(context.Background(), "lesson-1"); err != nil {
		t.Errorf("DeleteLesson() error = %v, want nil", err)
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("", staticTokens{})
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}

	trimmed := NewClient("http://example.com/", staticTokens{})
	if trimmed.BaseURL() != "http://example.com" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", trimmed.BaseURL())
	}
}
