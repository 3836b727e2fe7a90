// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/amaliw/somo-tui/internal/model"
)

// GenerateVideo invokes the backend's video generation pipeline. The
// call blocks for the full pipeline run, typically tens of seconds.
func (c *Client) GenerateVideo(ctx context.Context, req model.VideoRequest) (*model.VideoResponse, error) {
	var resp model.VideoResponse
	if err := c.request(ctx, http.MethodPost, "/api/generate-video", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListVideos returns summaries of the current user's videos.
func (c *Client) ListVideos(ctx context.Context) ([]model.VideoSummary, error) {
	var videos []model.VideoSummary
	if err := c.request(ctx, http.MethodGet, "/api/videos", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// DeleteVideo removes a video.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	return c.request(ctx, http.MethodDelete, "/api/videos/"+videoID, nil, nil)
}

// StreamURL returns the playback address for a generated video.
func (c *Client) StreamURL(videoID string) string {
	return c.baseURL + "/api/videos/" + videoID + "/stream"
}
