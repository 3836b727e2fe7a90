// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// SlideCounts is the closed set of valid slide counts for video requests.
var SlideCounts = []int{3, 4, 5, 6, 7, 8}

// Slide is one narrated slide of a video lesson.
type Slide struct {
	SlideNumber int      `json:"slideNumber"`
	Title       string   `json:"title"`
	Narration   string   `json:"narration"`
	ImagePrompt string   `json:"imagePrompt"`
	KeyPoints   []string `json:"keyPoints"`
}

// VideoScript is the ordered slide deck behind a generated video.
type VideoScript struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// VideoRequest asks the backend to generate a narrated slide video.
type VideoRequest struct {
	Topic      string `json:"topic"`
	GradeBand  string `json:"gradeBand"`
	Region     string `json:"region"`
	SlideCount int    `json:"slideCount"`
}

// VideoResponse is the backend's reply to a video generation request.
type VideoResponse struct {
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	VideoURL        string `json:"videoUrl"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	DurationSeconds int    `json:"durationSeconds"`
}

// VideoDocument is a stored video with backend-assigned metadata.
// There is no update path for videos; the document is immutable once
// generated.
type VideoDocument struct {
	ID              string       `json:"id"`
	OwnerUID        string       `json:"ownerUid"`
	Topic           string       `json:"topic"`
	GradeBand       string       `json:"gradeBand"`
	Region          string       `json:"region"`
	Title           string       `json:"title"`
	VideoURL        string       `json:"videoUrl"`
	ThumbnailURL    string       `json:"thumbnailUrl"`
	DurationSeconds int          `json:"durationSeconds"`
	CreatedAt       string       `json:"createdAt"`
	Script          *VideoScript `json:"script,omitempty"`
}

// VideoSummary is the listing projection of a VideoDocument.
type VideoSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Topic           string `json:"topic"`
	GradeBand       string `json:"gradeBand"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	DurationSeconds int    `json:"durationSeconds"`
	CreatedAt       string `json:"createdAt"`
}
