// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package create implements the lesson generation form page.
package create

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amaliw/somo-tui/internal/api"
	"github.com/amaliw/somo-tui/internal/model"
	"github.com/amaliw/somo-tui/internal/ui"
	"github.com/amaliw/somo-tui/internal/ui/components"
	"github.com/amaliw/somo-tui/internal/ui/styles"
)

// Form focus positions, top to bottom.
const (
	focusTopic = iota
	focusRegion
	focusGrade
	focusDuration
	focusSubmit
	focusCount
)

// generatedMsg carries the backend's reply to the form.
type generatedMsg struct {
	resp *model.GenerateResponse
	err  error
}

// Model is the create-lesson page.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	topic       textinput.Model
	regionIdx   int
	gradeIdx    int
	durationIdx int
	focus       int

	spinner    components.Spinner
	generating bool
	errText    string

	width  int
	height int
}

// New creates the page.
func New(theme *styles.Theme, client *api.Client) Model {
	topic := textinput.New()
	topic.Placeholder = "e.g. Photosynthesis and why leaves are green"
	topic.CharLimit = 500
	topic.Width = 60
	topic.Focus()

	return Model{
		theme:   theme,
		client:  client,
		topic:   topic,
		spinner: components.NewSpinner(theme),
	}
}

// Init is the page's entry command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize stores the window dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles page messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.generating {
			// The form is disabled while a generation call is in
			// flight; there is no cancellation for it.
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, ui.Navigate(ui.PageLibrary)
		case "tab", "down":
			m.focus = (m.focus + 1) % focusCount
			return m.syncFocus(), nil
		case "shift+tab", "up":
			m.focus = (m.focus + focusCount - 1) % focusCount
			return m.syncFocus(), nil
		case "left":
			m.cycle(-1)
			return m, nil
		case "right":
			m.cycle(1)
			return m, nil
		case "enter":
			if m.focus == focusSubmit {
				return m.submit()
			}
			m.focus = (m.focus + 1) % focusCount
			return m.syncFocus(), nil
		}

	case generatedMsg:
		m.generating = false
		m.spinner.Stop()
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		return m, ui.OpenLesson(msg.resp.LessonID)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	if m.focus == focusTopic && !m.generating {
		m.topic, cmd = m.topic.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// syncFocus moves textinput focus to match the form cursor.
func (m Model) syncFocus() Model {
	if m.focus == focusTopic {
		m.topic.Focus()
	} else {
		m.topic.Blur()
	}
	return m
}

// cycle steps the focused selector by delta.
func (m *Model) cycle(delta int) {
	switch m.focus {
	case focusRegion:
		m.regionIdx = wrap(m.regionIdx+delta, len(model.Regions))
	case focusGrade:
		m.gradeIdx = wrap(m.gradeIdx+delta, len(model.GradeBands))
	case focusDuration:
		m.durationIdx = wrap(m.durationIdx+delta, len(model.Durations))
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// submit validates the form and starts the generation call.
func (m Model) submit() (Model, tea.Cmd) {
	if strings.TrimSpace(m.topic.Value()) == "" {
		m.errText = "Please enter a topic prompt"
		return m, nil
	}
	m.errText = ""
	m.generating = true

	req := model.GenerateRequest{
		Region:          model.Regions[m.regionIdx],
		GradeBand:       model.GradeBands[m.gradeIdx],
		DurationMinutes: model.Durations[m.durationIdx],
		TopicPrompt:     strings.TrimSpace(m.topic.Value()),
	}
	client := m.client
	generate := func() tea.Msg {
		resp, err := client.GenerateLesson(context.Background(), req)
		return generatedMsg{resp: resp, err: err}
	}
	return m, tea.Batch(m.spinner.Start("Generating lesson plan, this can take a minute"), generate)
}

// View renders the form.
func (m Model) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(components.Header(t, "Create Lesson Plan"))
	b.WriteString("\n\n")

	b.WriteString(m.renderRow(focusTopic, "Topic", m.topic.View()))
	b.WriteString(m.renderRow(focusRegion, "Region", selector(t, model.Regions[m.regionIdx], m.focus == focusRegion)))
	b.WriteString(m.renderRow(focusGrade, "Grade band", selector(t, model.GradeBands[m.gradeIdx], m.focus == focusGrade)))
	b.WriteString(m.renderRow(focusDuration, "Duration", selector(t, fmt.Sprintf("%d min", model.Durations[m.durationIdx]), m.focus == focusDuration)))

	b.WriteString("\n")
	submit := "[ Generate ]"
	if m.focus == focusSubmit {
		submit = t.Selected.Render(submit)
	} else {
		submit = t.Label.Render(submit)
	}
	b.WriteString(submit)
	b.WriteString("\n")

	if m.generating {
		b.WriteString("\n" + m.spinner.View(t) + "\n")
	}
	if m.errText != "" {
		b.WriteString("\n" + t.Error.Render(m.errText) + "\n")
	}

	body := t.PanelBorder.Render(b.String())
	status := components.StatusBar(t, m.width, []components.Shortcut{
		{Key: "tab", Desc: "next field"},
		{Key: "←/→", Desc: "change value"},
		{Key: "enter", Desc: "generate"},
		{Key: "esc", Desc: "library"},
	})
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (m Model) renderRow(focus int, label, value string) string {
	t := m.theme
	marker := "  "
	if m.focus == focus {
		marker = t.Selected.Render("> ")
	}
	return fmt.Sprintf("%s%s %s\n", marker, t.Label.Width(12).Render(label), value)
}

// selector renders a cycling choice value.
func selector(t *styles.Theme, value string, focused bool) string {
	if focused {
		return t.Selected.Render("< " + value + " >")
	}
	return t.Value.Render(value)
}
