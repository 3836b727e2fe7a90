// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui defines the messages shared between the somo pages and
// the top-level application model.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaliw/somo-tui/internal/auth"
)

// Page identifies a top-level page.
type Page int

const (
	PageLibrary Page = iota
	PageCreate
	PageCreateVideo
	PageLesson
)

// NavigateMsg asks the application model to switch pages. LessonID is
// set when navigating to the lesson page.
type NavigateMsg struct {
	To       Page
	LessonID string
}

// Navigate returns a command that switches to the given page.
func Navigate(to Page) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// OpenLesson returns a command that opens the lesson page for an ID.
func OpenLesson(lessonID string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: PageLesson, LessonID: lessonID} }
}

// SessionChangedMsg carries a session-change notification from the
// auth store into the event loop. Session is nil on sign-out.
type SessionChangedMsg struct {
	Session *auth.Session
}
