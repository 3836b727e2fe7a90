// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package createvideo implements the video generation form page.
package createvideo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amaliw/somo-tui/internal/api"
	"github.com/amaliw/somo-tui/internal/model"
	"github.com/amaliw/somo-tui/internal/ui"
	"github.com/amaliw/somo-tui/internal/ui/components"
	"github.com/amaliw/somo-tui/internal/ui/styles"
)

const (
	focusTopic = iota
	focusGrade
	focusRegion
	focusSlides
	focusSubmit
	focusCount
)

// generatedMsg carries the backend's reply.
type generatedMsg struct {
	resp *model.VideoResponse
	err  error
}

// Model is the create-video page.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	topic     textinput.Model
	gradeIdx  int
	regionIdx int
	slideIdx  int
	focus     int

	spinner    components.Spinner
	generating bool
	errText    string
	result     *model.VideoResponse

	width  int
	height int
}

// New creates the page.
func New(theme *styles.Theme, client *api.Client) Model {
	topic := textinput.New()
	topic.Placeholder = "e.g. The water cycle"
	topic.CharLimit = 300
	topic.Width = 60
	topic.Focus()

	return Model{
		theme:    theme,
		client:   client,
		topic:    topic,
		slideIdx: 2, // 5 slides
		spinner:  components.NewSpinner(theme),
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
			return m, nil
		}
		if m.result != nil {
			switch msg.String() {
			case "n":
				m.result = nil
				m.topic.SetValue("")
				m.focus = focusTopic
				m.topic.Focus()
				return m, nil
			case "esc", "l":
				return m, ui.Navigate(ui.PageLibrary)
			}
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
		m.result = msg.resp
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	if m.focus == focusTopic && !m.generating && m.result == nil {
		m.topic, cmd = m.topic.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) syncFocus() Model {
	if m.focus == focusTopic {
		m.topic.Focus()
	} else {
		m.topic.Blur()
	}
	return m
}

func (m *Model) cycle(delta int) {
	switch m.focus {
	case focusGrade:
		m.gradeIdx = wrap(m.gradeIdx+delta, len(model.GradeBands))
	case focusRegion:
		m.regionIdx = wrap(m.regionIdx+delta, len(model.Regions))
	case focusSlides:
		m.slideIdx = wrap(m.slideIdx+delta, len(model.SlideCounts))
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (m Model) submit() (Model, tea.Cmd) {
	if strings.TrimSpace(m.topic.Value()) == "" {
		m.errText = "Please enter a topic"
		return m, nil
	}
	m.errText = ""
	m.generating = true

	req := model.VideoRequest{
		Topic:      strings.TrimSpace(m.topic.Value()),
		GradeBand:  model.GradeBands[m.gradeIdx],
		Region:     model.Regions[m.regionIdx],
		SlideCount: model.SlideCounts[m.slideIdx],
	}
	client := m.client
	generate := func() tea.Msg {
		resp, err := client.GenerateVideo(context.Background(), req)
		return generatedMsg{resp: resp, err: err}
	}
	return m, tea.Batch(
		m.spinner.Start("Creating slides and narration, this may take 30-60 seconds"),
		generate,
	)
}

// View renders the form or the generation result.
func (m Model) View() string {
	t := m.theme
	if m.result != nil {
		return m.renderResult()
	}

	var b strings.Builder
	b.WriteString(components.Header(t, "Create Video Lesson"))
	b.WriteString("\n\n")

	b.WriteString(m.renderRow(focusTopic, "Topic", m.topic.View()))
	b.WriteString(m.renderRow(focusGrade, "Grade band", selector(t, model.GradeBands[m.gradeIdx], m.focus == focusGrade)))
	b.WriteString(m.renderRow(focusRegion, "Region", selector(t, model.Regions[m.regionIdx], m.focus == focusRegion)))
	b.WriteString(m.renderRow(focusSlides, "Slides", selector(t, fmt.Sprintf("%d", model.SlideCounts[m.slideIdx]), m.focus == focusSlides)))

	b.WriteString("\n")
	submit := "[ Generate Video ]"
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

func (m Model) renderResult() string {
	t := m.theme
	r := m.result
	duration := (time.Duration(r.DurationSeconds) * time.Second).String()
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.Success.Render("Video created"),
		"",
		t.Label.Render("Title:    ")+t.Value.Render(r.Title),
		t.Label.Render("Duration: ")+t.Value.Render(duration),
		t.Label.Render("Stream:   ")+t.Value.Render(m.client.StreamURL(r.VideoID)),
		"",
		t.Hint.Render("n new video · esc library"),
	)
	status := components.StatusBar(t, m.width, []components.Shortcut{
		{Key: "n", Desc: "new video"},
		{Key: "esc", Desc: "library"},
	})
	return lipgloss.JoinVertical(lipgloss.Left, t.PanelBorder.Render(body), status)
}

func (m Model) renderRow(focus int, label, value string) string {
	t := m.theme
	marker := "  "
	if m.focus == focus {
		marker = t.Selected.Render("> ")
	}
	return fmt.Sprintf("%s%s %s\n", marker, t.Label.Width(12).Render(label), value)
}

func selector(t *styles.Theme, value string, focused bool) string {
	if focused {
		return t.Selected.Render("< " + value + " >")
	}
	return t.Value.Render(value)
}
