// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the authenticated HTTP client for the Lesson
// Plan Generator backend.
//
// Every request carries a freshly minted bearer token from the session
// store, a JSON content type, and a correlation ID. Non-2xx responses
// are mapped to *RequestError using the backend's {"detail": "..."}
// error shape. The client performs no retries, no caching, and sets no
// per-request deadline: a call runs until the transport settles or the
// caller's context is cancelled.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the local development backend address.
const DefaultBaseURL = "http://localhost:8000"

// maxResponseSize caps response bodies to keep a misbehaving backend
// from exhausting memory.
const maxResponseSize = 10 * 1024 * 1024

var (
	// ErrNotAuthenticated indicates no valid session exists for a call
	// that required one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMalformedResponse indicates a 2xx response body that did not
	// decode into the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// RequestError is a non-2xx backend response.
type RequestError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (HTTP %d): %s", e.Status, e.Detail)
}

// detailResponse is the backend's error body shape.
type detailResponse struct {
	Detail string `json:"detail"`
}

// TokenSource supplies a fresh, non-expired bearer token for the
// current session. Implemented by the auth store.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the Lesson Plan Generator backend.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a backend client. An empty baseURL falls back to
// DefaultBaseURL.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
	}
}

// WithHTTPClient overrides the underlying *http.Client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request performs one authenticated call and decodes the response
// into out. A nil out discards the body (DELETE endpoints return
// nothing). A nil body sends no payload.
func (c *Client) request(ctx context.Context, method, endpoint string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("api: %s %s -> %d (%v)", method, endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// errorFromResponse maps a non-2xx response to a *RequestError,
// falling back to a generic message when the body has no parseable
// detail field.
func errorFromResponse(status int, body []byte) error {
	var detail detailResponse
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &RequestError{Status: status, Detail: detail.Detail}
	}
	return &RequestError{Status: status, Detail: "request failed"}
}
