// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lesson implements the lesson view and edit page.
//
// The page reads every displayed value through the editor view-model:
// the server plan while viewing, the draft while editing. Edits are
// committed field by field into the draft and mirrored to the local
// draft store, so an interrupted session can be resumed later.
package lesson

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaliw/somo-tui/internal/api"
	"github.com/amaliw/somo-tui/internal/draft"
	"github.com/amaliw/somo-tui/internal/editor"
	"github.com/amaliw/somo-tui/internal/model"
	"github.com/amaliw/somo-tui/internal/render"
	"github.com/amaliw/somo-tui/internal/ui/styles"
)

type state int

const (
	stateLoading state = iota
	stateReady
	stateError
)

// fetchedMsg carries the lesson document and any stored draft.
type fetchedMsg struct {
	doc      *model.LessonDocument
	draftPln model.LessonPlan
	hasDraft bool
	err      error
}

// savedMsg carries the outcome of a save.
type savedMsg struct {
	err error
}

// Model is the lesson page.
type Model struct {
	theme        *styles.Theme
	client       *api.Client
	drafts       *draft.Store
	glamourStyle string

	lessonID string
	state    state
	doc      *model.LessonDocument
	ed       *editor.Editor
	loadErr  error

	// Viewing
	viewport viewport.Model
	resumed  bool

	// Editing
	fields      []fieldRef
	cursor      int
	input       textinput.Model
	inputActive bool
	saveErrText string
	notice      string

	width  int
	height int
}

// New creates the page for a lesson ID and starts the fetch.
func New(theme *styles.Theme, client *api.Client, drafts *draft.Store, glamourStyle, lessonID string) Model {
	input := textinput.New()
	input.CharLimit = 2000
	input.Width = 70

	return Model{
		theme:        theme,
		client:       client,
		drafts:       drafts,
		glamourStyle: glamourStyle,
		lessonID:     lessonID,
		state:        stateLoading,
		viewport:     viewport.New(80, 20),
		input:        input,
	}
}

// Init fetches the lesson and looks up a stored draft.
func (m Model) Init() tea.Cmd {
	client, drafts, id := m.client, m.drafts, m.lessonID
	return func() tea.Msg {
		doc, err := client.GetLesson(context.Background(), id)
		if err != nil {
			return fetchedMsg{err: err}
		}
		var stored model.LessonPlan
		var has bool
		if drafts != nil {
			stored, has, _ = drafts.Get(id)
		}
		return fetchedMsg{doc: doc, draftPln: stored, hasDraft: has}
	}
}

// SetSize stores the window dimensions and resizes the viewport.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	// Header, mode line and status bar take four rows.
	vh := height - 4
	if vh < 3 {
		vh = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vh
	if m.state == stateReady && m.ed.Mode() == editor.Viewing {
		m.refreshViewport()
	}
}

// LessonID returns the lesson this page displays.
func (m Model) LessonID() string {
	return m.lessonID
}

// PersistDraft writes an in-progress draft to the draft store. Called
// when the user navigates away or quits mid-edit.
func (m Model) PersistDraft() {
	if m.state != stateReady || m.drafts == nil {
		return
	}
	if !m.ed.Dirty() {
		return
	}
	if plan, ok := m.ed.Draft(); ok {
		// Losing a draft on exit is acceptable; blocking exit is not.
		_ = m.drafts.Put(m.lessonID, plan)
	}
}

// refreshViewport re-renders the markdown view from the editor's
// current read path.
func (m *Model) refreshViewport() {
	plan := m.ed.Plan()
	md := render.LessonMarkdown(plan)
	r, err := render.NewRenderer(m.glamourStyle, m.viewport.Width-2)
	if err != nil {
		m.viewport.SetContent(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		m.viewport.SetContent(md)
		return
	}
	m.viewport.SetContent(out)
}
