// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package lesson

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/amaliw/somo-tui/internal/editor"
	"github.com/amaliw/somo-tui/internal/ui/components"
)

// View renders the page.
func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return m.theme.Hint.Render("Loading lesson plan...")
	case stateError:
		hint := "enter back to library · r retry"
		return components.ErrorView(m.theme, m.loadErr, hint)
	}
	if m.ed.Mode() == editor.Editing {
		return m.renderEdit()
	}
	return m.renderView()
}

func (m Model) renderView() string {
	t := m.theme
	plan := m.ed.Plan()

	header := components.Header(t, plan.Title,
		"Grades "+plan.GradeBand,
		fmt.Sprintf("%d min", plan.DurationMinutes),
		plan.Region,
	)

	mode := t.ViewingTag.Render("viewing")
	if m.ed.Dirty() {
		mode += " " + t.Warning.Render("· unsaved draft")
	}
	if m.notice != "" {
		mode += "  " + t.Success.Render(m.notice)
	}

	status := components.StatusBar(t, m.width, []components.Shortcut{
		{Key: "e", Desc: "edit"},
		{Key: "↑/↓", Desc: "scroll"},
		{Key: "esc", Desc: "library"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, mode, m.viewport.View(), status)
}

func (m Model) renderEdit() string {
	t := m.theme
	plan := m.ed.Plan()

	header := components.Header(t, plan.Title, "Grades "+plan.GradeBand, plan.Region)

	mode := t.EditingTag.Render("editing")
	if m.ed.Saving() {
		mode = t.SavingTag.Render("saving...")
	}
	if m.saveErrText != "" {
		mode += "  " + t.Error.Render(m.saveErrText)
	} else if m.notice != "" {
		mode += "  " + t.Success.Render(m.notice)
	}

	var b strings.Builder
	visible := m.visibleFieldWindow()
	lastSection := ""
	for _, i := range visible {
		f := m.fields[i]
		if f.section != lastSection {
			b.WriteString(t.Subtitle.Render(f.section) + "\n")
			lastSection = f.section
		}
		marker := "  "
		if i == m.cursor {
			marker = t.Selected.Render("> ")
		}
		if i == m.cursor && m.inputActive {
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker, t.Label.Render(f.label+":"), m.input.View()))
			continue
		}
		value := runewidth.Truncate(f.value(plan), m.valueWidth(), "…")
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, t.Label.Render(f.label+":"), t.Value.Render(value)))
	}

	status := components.StatusBar(t, m.width, []components.Shortcut{
		{Key: "↑/↓", Desc: "field"},
		{Key: "enter", Desc: "edit value"},
		{Key: "s", Desc: "save"},
		{Key: "esc", Desc: "stop editing"},
		{Key: "D", Desc: "discard draft"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, mode, b.String(), status)
}

// visibleFieldWindow keeps the cursor inside the rows that fit the
// window height.
func (m Model) visibleFieldWindow() []int {
	rows := m.height - 6
	if rows < 5 {
		rows = 5
	}
	if len(m.fields) <= rows {
		all := make([]int, len(m.fields))
		for i := range all {
			all[i] = i
		}
		return all
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(m.fields) {
		start = len(m.fields) - rows
	}
	window := make([]int, 0, rows)
	for i := start; i < start+rows; i++ {
		window = append(window, i)
	}
	return window
}

func (m Model) valueWidth() int {
	w := m.width - 30
	if w < 20 {
		w = 20
	}
	return w
}
