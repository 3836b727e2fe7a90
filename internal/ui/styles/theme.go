// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the somo TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark
// detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// COLORS
// =============================================================================

// Emerald - brand color, success states, save confirmations
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Teal - secondary accent, video pages
var Teal = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

// Amber - warnings, unsaved-draft markers, editing mode
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Text - primary foreground
var Text = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}

// TextMuted - secondary foreground, hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// Surface - panel background
var Surface = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#1F2430"}

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components shared by all pages.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Badge    lipgloss.Style

	Label    lipgloss.Style
	Value    lipgloss.Style
	Hint     lipgloss.Style
	Selected lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusDesc  lipgloss.Style
	EditingTag  lipgloss.Style
	ViewingTag  lipgloss.Style
	SavingTag   lipgloss.Style
	PanelBorder lipgloss.Style
}

// NewTheme detects terminal capabilities and builds the style set.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	t.Subtitle = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.Badge = lipgloss.NewStyle().Foreground(Text).Background(Surface).Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(TextMuted)
	t.Value = lipgloss.NewStyle().Foreground(Text)
	t.Hint = lipgloss.NewStyle().Foreground(TextMuted).Faint(true)
	t.Selected = lipgloss.NewStyle().Bold(true).Foreground(Emerald)

	t.Error = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Success = lipgloss.NewStyle().Foreground(Emerald)

	t.StatusBar = lipgloss.NewStyle().Foreground(TextMuted).Background(Surface).Padding(0, 1)
	t.StatusKey = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	t.StatusDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.EditingTag = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.ViewingTag = lipgloss.NewStyle().Foreground(TextMuted)
	t.SavingTag = lipgloss.NewStyle().Bold(true).Foreground(Teal)
	t.PanelBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(1, 2)

	return t
}
