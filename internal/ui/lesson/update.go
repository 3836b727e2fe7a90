// Copyright (c) 2025-2026 Amali Wanjiru
// SPDX-License-Identifier: AGPL-3.0-or-later

package lesson

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaliw/somo-tui/internal/editor"
	"github.com/amaliw/somo-tui/internal/model"
	"github.com/amaliw/somo-tui/internal/ui"
)

// Update handles page messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		return m.handleFetched(msg)
	case savedMsg:
		return m.handleSaved(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateReady && m.ed.Mode() == editor.Viewing {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFetched(msg fetchedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateError
		m.loadErr = msg.err
		return m, nil
	}
	m.state = stateReady
	m.doc = msg.doc

	client, id := m.client, m.lessonID
	save := func(ctx context.Context, plan model.LessonPlan) (model.LessonPlan, error) {
		stored, err := client.UpdateLesson(ctx, id, plan)
		if err != nil {
			return model.LessonPlan{}, err
		}
		return stored.LessonPlan, nil
	}
	m.ed = editor.New(msg.doc.LessonPlan, save)
	if msg.hasDraft {
		m.ed.RestoreDraft(msg.draftPln)
		m.resumed = true
		m.notice = "Unsaved draft found — press e to resume editing"
	}
	m.refreshViewport()
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		// The editor kept its mode and draft; only surface the text.
		m.saveErrText = msg.err.Error()
		return m, nil
	}
	m.saveErrText = ""
	m.notice = "Saved"
	m.resumed = false
	if m.drafts != nil {
		m.drafts.Delete(m.lessonID)
	}
	m.fields = nil
	m.refreshViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case stateLoading:
		if msg.String() == "esc" {
			return m, ui.Navigate(ui.PageLibrary)
		}
		return m, nil
	case stateError:
		switch msg.String() {
		case "esc", "enter":
			return m, ui.Navigate(ui.PageLibrary)
		case "r":
			m.state = stateLoading
			m.loadErr = nil
			return m, m.Init()
		}
		return m, nil
	}

	if m.ed.Mode() == editor.Editing {
		return m.handleEditKey(msg)
	}
	return m.handleViewKey(msg)
}

func (m Model) handleViewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		m.ed.EnterEdit()
		m.fields = buildFields(m.ed.Plan())
		m.cursor = 0
		m.notice = ""
		if m.resumed {
			m.notice = "Resumed unsaved draft"
			m.resumed = false
		}
		return m, nil
	case "esc":
		return m, ui.Navigate(ui.PageLibrary)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.inputActive {
		switch msg.String() {
		case "enter":
			m.fields[m.cursor].commit(m.ed, m.input.Value())
			m.inputActive = false
			m.input.Blur()
			m.mirrorDraft()
			return m, nil
		case "esc":
			m.inputActive = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		m.input.SetValue(m.fields[m.cursor].value(m.ed.Plan()))
		m.input.CursorEnd()
		m.input.Focus()
		m.inputActive = true
		return m, nil
	case "ctrl+s", "s":
		return m.startSave()
	case "D":
		m.ed.DiscardDraft()
		if m.drafts != nil {
			m.drafts.Delete(m.lessonID)
		}
		m.fields = nil
		m.saveErrText = ""
		m.notice = "Draft discarded"
		m.refreshViewport()
		return m, nil
	case "esc":
		// Leave edit mode; the draft stays for a later resume.
		m.ed.ExitEdit()
		m.fields = nil
		m.refreshViewport()
		return m, nil
	}
	return m, nil
}

// startSave launches the save unless one is already in flight.
func (m Model) startSave() (Model, tea.Cmd) {
	if m.ed.Saving() {
		return m, nil
	}
	m.saveErrText = ""
	ed := m.ed
	return m, func() tea.Msg {
		return savedMsg{err: ed.Save(context.Background())}
	}
}

// mirrorDraft persists the draft after each committed edit so an
// interrupted session can resume.
func (m *Model) mirrorDraft() {
	if m.drafts == nil {
		return
	}
	if plan, ok := m.ed.Draft(); ok {
		m.drafts.Put(m.lessonID, plan)
	}
}
