// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/amaliw/somo-tui/internal/model"
)

// GenerateLesson invokes the backend's lesson generation pipeline.
func (c *Client) GenerateLesson(ctx context.Context, req model.GenerateRequest) (*model.GenerateResponse, error) {
	var resp model.GenerateResponse
	if err := c.request(ctx, http.MethodPost, "/api/generate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetLesson fetches a single lesson document by ID.
func (c *Client) GetLesson(ctx context.Context, lessonID string) (*model.LessonDocument, error) {
	var doc model.LessonDocument
	if err := c.request(ctx, http.MethodGet, "/api/lessons/"+lessonID, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateLesson commits an edited plan and returns the stored document.
func (c *Client) UpdateLesson(ctx context.Context, lessonID string, plan model.LessonPlan) (*model.LessonDocument, error) {
	var doc model.LessonDocument
	req := model.UpdateLessonRequest{LessonPlan: plan}
	if err := c.request(ctx, http.MethodPut, "/api/lessons/"+lessonID, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListLessons returns summaries of the current user's lessons.
func (c *Client) ListLessons(ctx context.Context) ([]model.LessonSummary, error) {
	var lessons []model.LessonSummary
	if err := c.request(ctx, http.MethodGet, "/api/lessons", nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// DeleteLesson removes a lesson.
func (c *Client) DeleteLesson(ctx context.Context, lessonID string) error {
	return c.request(ctx, http.MethodDelete, "/api/lessons/"+lessonID, nil, nil)
}
