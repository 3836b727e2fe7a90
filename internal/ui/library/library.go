// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package library implements the saved lessons and videos listing page.
package library

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/amaliw/somo-tui/internal/api"
	"github.com/amaliw/somo-tui/internal/model"
	"github.com/amaliw/somo-tui/internal/ui"
	"github.com/amaliw/somo-tui/internal/ui/components"
	"github.com/amaliw/somo-tui/internal/ui/styles"
)

// tab selects which listing is shown.
type tab int

const (
	tabLessons tab = iota
	tabVideos
)

// loadedMsg carries both listings.
type loadedMsg struct {
	lessons []model.LessonSummary
	videos  []model.VideoSummary
	err     error
}

// deletedMsg reports the outcome of a delete.
type deletedMsg struct {
	err error
}

// Model is the library page.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	tab     tab
	lessons []model.LessonSummary
	videos  []model.VideoSummary

	lessonTable table.Model
	videoTable  table.Model

	loading bool
	errText string

	width  int
	height int
}

// New creates the page.
func New(theme *styles.Theme, client *api.Client) Model {
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(styles.Emerald)
	st.Selected = st.Selected.Foreground(styles.Text).Background(styles.Surface).Bold(true)

	lessonTable := table.New(table.WithFocused(true))
	lessonTable.SetStyles(st)
	videoTable := table.New()
	videoTable.SetStyles(st)

	return Model{
		theme:       theme,
		client:      client,
		lessonTable: lessonTable,
		videoTable:  videoTable,
		loading:     true,
	}
}

// Init loads both listings.
func (m Model) Init() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		lessons, err := client.ListLessons(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		videos, err := client.ListVideos(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{lessons: lessons, videos: videos}
	}
}

// SetSize stores the window dimensions and resizes the tables.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	th := height - 6
	if th < 3 {
		th = 3
	}
	m.lessonTable.SetHeight(th)
	m.videoTable.SetHeight(th)
	m.rebuildTables()
}

// Update handles page messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.lessons = msg.lessons
		m.videos = msg.videos
		m.rebuildTables()
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.loading = true
		return m, m.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.switchTab()
			return m, nil
		case "n":
			return m, ui.Navigate(ui.PageCreate)
		case "v":
			return m, ui.Navigate(ui.PageCreateVideo)
		case "r":
			m.loading = true
			return m, m.Init()
		case "enter":
			if m.tab == tabLessons {
				if id := m.selectedLessonID(); id != "" {
					return m, ui.OpenLesson(id)
				}
			}
			return m, nil
		case "d":
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	if m.tab == tabLessons {
		m.lessonTable, cmd = m.lessonTable.Update(msg)
	} else {
		m.videoTable, cmd = m.videoTable.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab() {
	if m.tab == tabLessons {
		m.tab = tabVideos
		m.lessonTable.Blur()
		m.videoTable.Focus()
	} else {
		m.tab = tabLessons
		m.videoTable.Blur()
		m.lessonTable.Focus()
	}
}

func (m Model) selectedLessonID() string {
	i := m.lessonTable.Cursor()
	if i < 0 || i >= len(m.lessons) {
		return ""
	}
	return m.lessons[i].ID
}

func (m Model) selectedVideoID() string {
	i := m.videoTable.Cursor()
	if i < 0 || i >= len(m.videos) {
		return ""
	}
	return m.videos[i].ID
}

// deleteSelected removes the highlighted row through the client.
func (m Model) deleteSelected() (Model, tea.Cmd) {
	client := m.client
	if m.tab == tabLessons {
		id := m.selectedLessonID()
		if id == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return deletedMsg{err: client.DeleteLesson(context.Background(), id)}
		}
	}
	id := m.selectedVideoID()
	if id == "" {
		return m, nil
	}
	return m, func() tea.Msg {
		return deletedMsg{err: client.DeleteVideo(context.Background(), id)}
	}
}

// rebuildTables refreshes rows and column widths from current data.
func (m *Model) rebuildTables() {
	titleWidth := m.width - 46
	if titleWidth < 20 {
		titleWidth = 20
	}

	lessonRows := make([]table.Row, 0, len(m.lessons))
	for _, l := range m.lessons {
		lessonRows = append(lessonRows, table.Row{
			runewidth.Truncate(l.Title, titleWidth, "…"),
			l.Region,
			l.GradeBand,
			formatDate(l.UpdatedAt),
		})
	}
	m.lessonTable.SetColumns([]table.Column{
		{Title: "Title", Width: titleWidth},
		{Title: "Region", Width: 14},
		{Title: "Grades", Width: 7},
		{Title: "Updated", Width: 12},
	})
	m.lessonTable.SetRows(lessonRows)

	videoRows := make([]table.Row, 0, len(m.videos))
	for _, v := range m.videos {
		videoRows = append(videoRows, table.Row{
			runewidth.Truncate(v.Title, titleWidth, "…"),
			v.Topic,
			v.GradeBand,
			fmt.Sprintf("%ds", v.DurationSeconds),
		})
	}
	m.videoTable.SetColumns([]table.Column{
		{Title: "Title", Width: titleWidth},
		{Title: "Topic", Width: 14},
		{Title: "Grades", Width: 7},
		{Title: "Length", Width: 12},
	})
	m.videoTable.SetRows(videoRows)
}

// View renders the page.
func (m Model) View() string {
	t := m.theme

	var tabs string
	if m.tab == tabLessons {
		tabs = t.Selected.Render("Lessons") + "  " + t.ViewingTag.Render("Videos")
	} else {
		tabs = t.ViewingTag.Render("Lessons") + "  " + t.Selected.Render("Videos")
	}
	header := components.Header(t, "Library") + "  " + tabs

	var body string
	switch {
	case m.loading:
		body = t.Hint.Render("Loading your library...")
	case m.errText != "":
		body = t.Error.Render(m.errText)
	case m.tab == tabLessons && len(m.lessons) == 0:
		body = t.Hint.Render("No lesson plans yet. Press n to create one.")
	case m.tab == tabVideos && len(m.videos) == 0:
		body = t.Hint.Render("No videos yet. Press v to create one.")
	case m.tab == tabLessons:
		body = m.lessonTable.View()
	default:
		body = m.videoTable.View()
	}

	status := components.StatusBar(t, m.width, []components.Shortcut{
		{Key: "enter", Desc: "open"},
		{Key: "tab", Desc: "lessons/videos"},
		{Key: "n", Desc: "new lesson"},
		{Key: "v", Desc: "new video"},
		{Key: "d", Desc: "delete"},
		{Key: "r", Desc: "reload"},
		{Key: "q", Desc: "quit"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, status)
}

// formatDate shortens an RFC 3339 timestamp to its date.
func formatDate(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return parsed.Format("Jan 2, 2006")
}
