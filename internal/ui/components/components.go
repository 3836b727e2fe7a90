// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI pieces for the somo TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amaliw/somo-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// Spinner is a loading indicator with a message and elapsed timer.
// Generation calls can run for a minute; the timer keeps the wait
// honest.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
}

// NewSpinner creates an inactive spinner.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Emerald)
	return Spinner{spinner: s}
}

// Start activates the spinner with a message and returns its tick.
func (s *Spinner) Start(message string) tea.Cmd {
	s.message = message
	s.startTime = time.Now()
	s.active = true
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is running.
func (s Spinner) Active() bool {
	return s.active
}

// Update advances the spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner line.
func (s Spinner) View(theme *styles.Theme) string {
	if !s.active {
		return ""
	}
	elapsed := time.Since(s.startTime).Round(time.Second)
	line := fmt.Sprintf("%s %s", s.spinner.View(), s.message)
	if elapsed >= time.Second {
		line += theme.Hint.Render(fmt.Sprintf(" (%s)", elapsed))
	}
	return line
}

// =============================================================================
// HEADER AND STATUS BAR
// =============================================================================

// Header renders the page title line with optional badges.
func Header(theme *styles.Theme, title string, badges ...string) string {
	parts := []string{theme.Title.Render(title)}
	for _, b := range badges {
		parts = append(parts, theme.Badge.Render(b))
	}
	return strings.Join(parts, " ")
}

// Shortcut is one key binding shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom shortcut bar.
func StatusBar(theme *styles.Theme, width int, shortcuts []Shortcut) string {
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts, theme.StatusKey.Render(sc.Key)+" "+theme.StatusDesc.Render(sc.Desc))
	}
	bar := strings.Join(parts, "  ")
	if width > 0 {
		return theme.StatusBar.Width(width).Render(bar)
	}
	return theme.StatusBar.Render(bar)
}

// =============================================================================
// SIGN-IN PROMPT AND ERROR VIEW
// =============================================================================

// SignInPrompt renders the gate shown to signed-out users.
func SignInPrompt(theme *styles.Theme, action string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Sign In Required"),
		"",
		theme.Value.Render("Please sign in to "+action+"."),
		"",
		theme.StatusKey.Render("s")+theme.StatusDesc.Render(" sign in with Google")+
			"   "+theme.StatusKey.Render("q")+theme.StatusDesc.Render(" quit"),
	)
	return theme.PanelBorder.Render(body)
}

// ErrorView renders a failure with a hint line.
func ErrorView(theme *styles.Theme, err error, hint string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Error.Render("Error"),
		"",
		theme.Value.Render(err.Error()),
		"",
		theme.Hint.Render(hint),
	)
	return theme.PanelBorder.BorderForeground(styles.Rose).Render(body)
}
